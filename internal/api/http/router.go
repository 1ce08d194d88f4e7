package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/admin-portal/internal/api/http/handlers"
	"github.com/spec-kit/admin-portal/internal/auth"
	"github.com/spec-kit/admin-portal/internal/domain"
	"github.com/spec-kit/admin-portal/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Customers      *handlers.CustomersHandler
	Devices        *handlers.DevicesHandler
	Tickets        *handlers.TicketsHandler
	Audit          *handlers.AuditHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Upstream)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	guard := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRole(auth.AllRoles()...)}

	customers := app.Group("/customers", guard...)
	customers.Get("/", cfg.Customers.List)
	customers.Get("/:id", cfg.Customers.Get)

	devices := app.Group("/devices", guard...)
	devices.Get("/", cfg.Devices.List)
	devices.Get("/:id", cfg.Devices.Get)

	tickets := app.Group("/tickets", guard...)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)

	if cfg.Audit != nil {
		app.Get("/audit", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin, domain.RoleManager), cfg.Audit.List)
	}
}
