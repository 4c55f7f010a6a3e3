package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airquality-service/internal/api/http/handlers"
	"github.com/spec-kit/airquality-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Telemetry      *handlers.TelemetryHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Only the registered methods are served;
// Fiber rejects others with 405.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", cfg.Auth.Logout)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/air", cfg.Telemetry.Readings)
	protected.Get("/air/:cliente", cfg.Telemetry.Readings)
	protected.Get("/clients", auth.RequireAdmin(), cfg.Telemetry.Clients)
	protected.Get("/locais", cfg.Telemetry.Locations)
}
