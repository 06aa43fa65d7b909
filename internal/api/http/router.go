package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-insights/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Report  *handlers.ReportHandler
	Tickets *handlers.TicketsHandler
	Minutes *handlers.MinutesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Get("/report", cfg.Report.Get)
	api.Post("/refresh", cfg.Report.Refresh)
	api.Get("/tickets", cfg.Tickets.List)

	if cfg.Minutes != nil {
		api.Post("/minutes", cfg.Minutes.ProcessText)
		api.Post("/minutes/upload", cfg.Minutes.ProcessUpload)
		api.Get("/minutes/:id", cfg.Minutes.Get)
	}
}
