package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"tramites/internal/categories"
	"tramites/internal/email"
	"tramites/internal/reports"
	"tramites/internal/tramites"
	"tramites/internal/validation"
)

// PageHandler renders the dashboard pages.
type PageHandler struct {
	svc      *tramites.Service
	store    reports.Store
	notifier *email.Notifier
	log      zerolog.Logger
}

// NewPageHandler creates the page handler.
func NewPageHandler(svc *tramites.Service, store reports.Store, notifier *email.Notifier, log zerolog.Logger) *PageHandler {
	return &PageHandler{svc: svc, store: store, notifier: notifier, log: log}
}

// Index renders the home page with the headline numbers.
func (h *PageHandler) Index(c fiber.Ctx) error {
	stats := h.svc.Statistics(c.Context())
	return c.Render("index", pageData(c, "Consulta de Trámites INVIMA", fiber.Map{
		"Stats": stats,
	}))
}

// Buscar renders the radicado search page, with results when a filter was
// given.
func (h *PageHandler) Buscar(c fiber.Ctx) error {
	params := tramites.SearchParams{
		Radicado:    c.Query("radicado", ""),
		Estado:      c.Query("estado", ""),
		FechaInicio: c.Query("fecha_inicio", ""),
		FechaFin:    c.Query("fecha_fin", ""),
		Limit:       50,
	}

	data := fiber.Map{"Params": params}

	if params.Radicado != "" || params.Estado != "" || params.FechaInicio != "" || params.FechaFin != "" {
		result, err := h.svc.Search(c.Context(), params)
		if err != nil {
			h.log.Error().Err(err).Msg("search page query failed")
			data["Error"] = "No fue posible consultar los trámites. Intente de nuevo más tarde."
		} else {
			data["Result"] = result
		}
	}

	return c.Render("buscar", pageData(c, "Buscar Trámite", data))
}

// Suit renders the categorized SUIT search page.
func (h *PageHandler) Suit(c fiber.Ctx) error {
	texto := c.Query("texto", "")
	var cats []string
	if raw := c.Query("categoria", ""); raw != "" {
		cats = []string{raw}
	}

	data := fiber.Map{
		"Texto":      texto,
		"Categoria":  c.Query("categoria", ""),
		"Categorias": categories.Table,
	}

	if texto != "" || len(cats) > 0 {
		result, err := h.svc.SearchSUIT(c.Context(), texto, cats, 20, 0)
		if err != nil {
			h.log.Error().Err(err).Msg("suit page query failed")
			data["Error"] = "No fue posible consultar el SUIT. Intente de nuevo más tarde."
		} else {
			data["Result"] = result
		}
	}

	return c.Render("suit", pageData(c, "Trámites y Requisitos", data))
}

// Estadisticas renders the statistics page.
func (h *PageHandler) Estadisticas(c fiber.Ctx) error {
	return c.Render("estadisticas", pageData(c, "Estadísticas", fiber.Map{
		"Stats": h.svc.Statistics(c.Context()),
	}))
}

// Tablero renders the public board page.
func (h *PageHandler) Tablero(c fiber.Ctx) error {
	board, err := h.svc.PublicBoard(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("public board query failed")
		return fiber.NewError(fiber.StatusInternalServerError, "No fue posible cargar el tablero público")
	}
	return c.Render("tablero", pageData(c, "Tablero Público", fiber.Map{
		"Board": board,
	}))
}

// DatosAbiertos renders the open-data download page.
func (h *PageHandler) DatosAbiertos(c fiber.Ctx) error {
	return c.Render("datos_abiertos", pageData(c, "Datos Abiertos", nil))
}

// Reportar renders the error-report form.
func (h *PageHandler) Reportar(c fiber.Ctx) error {
	return c.Render("reportar", pageData(c, "Reportar un Error", fiber.Map{
		"Input": validation.ReportInput{},
	}))
}

// ReportarSubmit handles the form submission of an error report and
// re-renders the form with the outcome.
func (h *PageHandler) ReportarSubmit(c fiber.Ctx) error {
	in := validation.ReportInput{
		Nombre:         c.FormValue("nombre"),
		Email:          c.FormValue("email"),
		TipoError:      c.FormValue("tipo_error"),
		Descripcion:    c.FormValue("descripcion"),
		NumeroRadicado: c.FormValue("numero_radicado"),
	}

	if err := validation.ValidateReport(&in); err != nil {
		return c.Render("reportar", pageData(c, "Reportar un Error", fiber.Map{
			"Input": in,
			"Error": err.Error(),
		}))
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
		h.log.Error().Err(err).Msg("failed to save report from form")
		return c.Render("reportar", pageData(c, "Reportar un Error", fiber.Map{
			"Input": in,
			"Error": "No se pudo guardar el reporte, intente de nuevo más tarde.",
		}))
	}

	go h.notifier.NotifyReportSubmitted(report)

	return c.Render("reportar", pageData(c, "Reportar un Error", fiber.Map{
		"Input":    validation.ReportInput{},
		"Success":  "Reporte recibido, gracias por ayudarnos a mejorar.",
		"ReportID": id,
	}))
}

// Reportes renders the public (anonymized) report list.
func (h *PageHandler) Reportes(c fiber.Ctx) error {
	items, err := h.store.List(c.Context(), 50)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list reports for page")
		return fiber.NewError(fiber.StatusInternalServerError, "No fue posible cargar los reportes")
	}

	anon := make([]reports.AnonymizedReport, len(items))
	for i, r := range items {
		anon[i] = r.Anonymize()
	}

	return c.Render("reportes", pageData(c, "Reportes de Errores", fiber.Map{
		"Reportes": anon,
	}))
}

// ReportesAdmin renders the full report list with contact details. Routed
// behind RequireAuth.
func (h *PageHandler) ReportesAdmin(c fiber.Ctx) error {
	items, err := h.store.List(c.Context(), 200)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list reports for admin page")
		return fiber.NewError(fiber.StatusInternalServerError, "No fue posible cargar los reportes")
	}

	return c.Render("reportes_admin", pageData(c, "Administración de Reportes", fiber.Map{
		"Reportes": items,
	}))
}
