package api

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"tramites/internal/tramites"
	"tramites/internal/validation"
)

// TramitesHandler serves the tramite search endpoints.
type TramitesHandler struct {
	svc *tramites.Service
}

// NewTramitesHandler creates the handler.
func NewTramitesHandler(svc *tramites.Service) *TramitesHandler {
	return &TramitesHandler{svc: svc}
}

// Buscar searches tramites by radicado, estado or date range.
// GET /api/v1/tramites/buscar
func (h *TramitesHandler) Buscar(c fiber.Ctx) error {
	params := tramites.SearchParams{
		Radicado:    c.Query("radicado", ""),
		Estado:      c.Query("estado", ""),
		FechaInicio: c.Query("fecha_inicio", ""),
		FechaFin:    c.Query("fecha_fin", ""),
		Limit:       validation.ClampLimit(queryInt(c, "limit", 100), 100, tramites.MaxLimit),
		Offset:      validation.ClampOffset(queryInt(c, "offset", 0)),
	}

	result, err := h.svc.Search(c.Context(), params)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "error al buscar trámites")
	}
	return c.JSON(result)
}

// Detalle returns one tramite by radicado.
// GET /api/v1/tramites/detalle/:numero_radicado
func (h *TramitesHandler) Detalle(c fiber.Ctx) error {
	radicado := c.Params("numero_radicado")
	if radicado == "" {
		return jsonError(c, fiber.StatusBadRequest, "número de radicado requerido")
	}

	row, err := h.svc.Detail(c.Context(), radicado)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "error al obtener detalle")
	}
	if row == nil {
		return jsonError(c, fiber.StatusNotFound, "trámite no encontrado")
	}
	return c.JSON(row)
}

// Campos lists the dataset columns.
// GET /api/v1/tramites/campos
func (h *TramitesHandler) Campos(c fiber.Ctx) error {
	campos, err := h.svc.Fields(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "error al obtener campos")
	}
	return c.JSON(fiber.Map{"campos": campos})
}

// Suit runs the categorized SUIT search.
// GET /api/v1/tramites/suit
func (h *TramitesHandler) Suit(c fiber.Ctx) error {
	texto := c.Query("texto", "")
	categorias := splitList(c.Query("categorias", ""))
	limit := validation.ClampLimit(queryInt(c, "limit", 20), 20, tramites.MaxSuitLimit)
	offset := validation.ClampOffset(queryInt(c, "offset", 0))

	result, err := h.svc.SearchSUIT(c.Context(), texto, categorias, limit, offset)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "error al buscar trámites en el SUIT")
	}
	return c.JSON(result)
}

// splitList parses a comma-separated query value.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
