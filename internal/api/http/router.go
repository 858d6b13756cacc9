package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/http/handlers"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	login := app.Group("/api/login")
	login.Post("/", cfg.Users.Login)
	login.Post("/register", cfg.Users.Register)

	users := app.Group("/api/users")
	users.Get("/me", cfg.AuthMiddleware.Authorize(), cfg.Users.Me)

	adminOnly := cfg.AuthMiddleware.Authorize(domain.RoleAdmin)
	users.Get("/", adminOnly, cfg.Users.List)
	users.Post("/", adminOnly, cfg.Users.Create)
	users.Get("/:id", adminOnly, cfg.Users.Get)
	users.Put("/:id", adminOnly, cfg.Users.Update)
	users.Delete("/:id", adminOnly, cfg.Users.Delete)
}
