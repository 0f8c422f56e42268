package api

import (
	"github.com/gofiber/fiber/v3"

	"tramites/internal/tramites"
)

// DashboardHandler serves the statistics endpoints.
type DashboardHandler struct {
	svc *tramites.Service
}

// NewDashboardHandler creates the handler.
func NewDashboardHandler(svc *tramites.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Estadisticas returns the dashboard statistics. Sub-query failures are
// tolerated inside the service, so this endpoint always answers.
// GET /api/v1/dashboard/estadisticas
func (h *DashboardHandler) Estadisticas(c fiber.Ctx) error {
	return c.JSON(h.svc.Statistics(c.Context()))
}

// Metricas returns totals and the distinct estados.
// GET /api/v1/dashboard/metricas
func (h *DashboardHandler) Metricas(c fiber.Ctx) error {
	m, err := h.svc.Metricas(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "error al obtener métricas")
	}
	return c.JSON(m)
}
