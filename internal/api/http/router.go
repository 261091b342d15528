package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Bookings       *handlers.BookingsHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleManager))
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/technicians", cfg.Users.ListTechnicians)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Post("/:id/assign", cfg.Tickets.Assign)
	tickets.Post("/:id/status", cfg.Tickets.ChangeStatus)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id/chat", cfg.Tickets.ListChatMessages)
	tickets.Post("/:id/chat", cfg.Tickets.SendChatMessage)
	tickets.Post("/:id/chat/read", cfg.Tickets.MarkChatRead)

	bookings := app.Group("/bookings", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	bookings.Get("/", cfg.Bookings.List)
	bookings.Post("/", cfg.Bookings.Create)
	bookings.Put("/:id", cfg.Bookings.Update)
	bookings.Delete("/:id", cfg.Bookings.Delete)

	app.Get("/stats", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleManager), cfg.Stats.Get)
}
