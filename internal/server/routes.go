package server

import (
	"context"

	"tramites/internal/email"
	"tramites/internal/handlers"
	"tramites/internal/handlers/api"
	"tramites/internal/metrics"
	"tramites/internal/middleware"
	"tramites/internal/reports"
	"tramites/internal/tramites"
)

// Dependencies are the wired services the routes are built from.
type Dependencies struct {
	Service  *tramites.Service
	Reports  reports.Store
	Notifier *email.Notifier
	Metadata api.MetadataFetcher
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Dependencies) error {
	authMiddleware := middleware.NewAuthMiddleware()

	tramitesHandler := api.NewTramitesHandler(deps.Service)
	dashboardHandler := api.NewDashboardHandler(deps.Service)
	publicHandler := api.NewPublicHandler(deps.Service, deps.Metadata, s.Cfg.SocrataDatasetID)
	reportesHandler := api.NewReportesHandler(deps.Reports, deps.Notifier, s.Log)
	pageHandler := handlers.NewPageHandler(deps.Service, deps.Reports, deps.Notifier, s.Log)

	// JSON API
	v1 := s.App.Group("/api/v1")
	v1.Get("/tramites/buscar", tramitesHandler.Buscar)
	v1.Get("/tramites/detalle/:numero_radicado", tramitesHandler.Detalle)
	v1.Get("/tramites/campos", tramitesHandler.Campos)
	v1.Get("/tramites/suit", tramitesHandler.Suit)
	v1.Get("/dashboard/estadisticas", dashboardHandler.Estadisticas)
	v1.Get("/dashboard/metricas", dashboardHandler.Metricas)
	v1.Get("/public/tablero", publicHandler.Tablero)
	v1.Get("/public/datos-abiertos", publicHandler.DatosAbiertos)
	v1.Get("/public/metadata", publicHandler.Metadata)
	v1.Post("/reportes", reportesHandler.Crear)
	v1.Get("/reportes", reportesHandler.Listar)

	// Dashboard pages
	s.App.Get("/", pageHandler.Index)
	s.App.Get("/buscar", pageHandler.Buscar)
	s.App.Get("/suit", pageHandler.Suit)
	s.App.Get("/estadisticas", pageHandler.Estadisticas)
	s.App.Get("/tablero", pageHandler.Tablero)
	s.App.Get("/datos-abiertos", pageHandler.DatosAbiertos)
	s.App.Get("/reportar", pageHandler.Reportar)
	s.App.Post("/reportar", pageHandler.ReportarSubmit)
	s.App.Get("/reportes", pageHandler.Reportes)

	// Auth + admin routes only exist when OIDC is configured.
	if s.Cfg.IsAuthEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, s.Log)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
		s.App.Get("/admin/reportes", authMiddleware.RequireAuth, pageHandler.ReportesAdmin)
	} else {
		s.Log.Info().Msg("OIDC not configured, reports admin page disabled")
	}

	// Operational endpoints
	s.App.Get("/health", api.Health)
	s.App.Get("/metrics", metrics.Handler())

	return nil
}
