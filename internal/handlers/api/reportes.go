package api

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"tramites/internal/email"
	"tramites/internal/metrics"
	"tramites/internal/middleware"
	"tramites/internal/reports"
	"tramites/internal/validation"
)

// ReportesHandler serves the error-report endpoints.
type ReportesHandler struct {
	store    reports.Store
	notifier *email.Notifier
	log      zerolog.Logger
}

// NewReportesHandler creates the handler.
func NewReportesHandler(store reports.Store, notifier *email.Notifier, log zerolog.Logger) *ReportesHandler {
	return &ReportesHandler{store: store, notifier: notifier, log: log}
}

// Crear accepts a new error report. A store failure still answers 200 with
// success=false so the frontend can show the message as-is.
// POST /api/v1/reportes
func (h *ReportesHandler) Crear(c fiber.Ctx) error {
	var in validation.ReportInput
	if err := c.Bind().Body(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "cuerpo de la solicitud inválido")
	}
	if err := validation.ValidateReport(&in); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	report := &reports.Report{
		Nombre:         in.Nombre,
		Email:          in.Email,
		TipoError:      in.TipoError,
		Descripcion:    in.Descripcion,
		NumeroRadicado: in.NumeroRadicado,
		FechaReporte:   time.Now(),
	}

	id, err := h.store.Save(c.Context(), report)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to save report")
		metrics.ReportsSubmitted.WithLabelValues("error").Inc()
		return c.JSON(fiber.Map{
			"success":    false,
			"message":    "no se pudo guardar el reporte, intente de nuevo más tarde",
			"reporte_id": nil,
		})
	}

	metrics.ReportsSubmitted.WithLabelValues("ok").Inc()
	go h.notifier.NotifyReportSubmitted(report)

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "reporte recibido, gracias por ayudarnos a mejorar",
		"reporte_id": id,
	})
}

// Listar returns stored reports, newest first. Contact details are only
// included for authenticated admin sessions.
// GET /api/v1/reportes
func (h *ReportesHandler) Listar(c fiber.Ctx) error {
	limit := validation.ClampLimit(queryInt(c, "limit", 50), 50, 200)

	items, err := h.store.List(c.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list reports")
		return jsonError(c, fiber.StatusInternalServerError, "error al listar reportes")
	}

	if middleware.IsAuthenticated(c) {
		return c.JSON(fiber.Map{"total": len(items), "reportes": items})
	}

	anon := make([]reports.AnonymizedReport, len(items))
	for i, r := range items {
		anon[i] = r.Anonymize()
	}
	return c.JSON(fiber.Map{"total": len(anon), "reportes": anon})
}
