package http

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-directory/internal/api/http/handlers"
	"github.com/spec-kit/user-directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Contacts       *handlers.ContactsHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimit      fiber.Handler
}

// RegisterRoutes wires HTTP routes. Identity resolution runs before the rate
// limiter so limits key on the caller, not the address, and system callers
// bypass it.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Health)
	app.Get("/", cfg.Health.Root)

	users := app.Group("/api/users", cfg.AuthMiddleware.Handle, cfg.RateLimit)
	users.Get("/stats/count", cfg.Users.Stats)
	users.Get("/search/all", cfg.Users.Search)
	users.Get("/department/:dept", cfg.Users.ByDepartment)
	users.Get("/status/active", cfg.Users.Active)
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	// Submission stays public; administration requires a resolved identity.
	contact := app.Group("/api/contact")
	contact.Post("/", cfg.Contacts.Submit)

	admin := contact.Group("", cfg.AuthMiddleware.Handle, cfg.RateLimit)
	admin.Get("/stats", cfg.Contacts.Stats)
	admin.Get("/", cfg.Contacts.List)
	admin.Get("/:id", cfg.Contacts.Get)
	admin.Patch("/:id/status", cfg.Contacts.UpdateStatus)
	admin.Delete("/:id", auth.RequireRole("admin", "system"), cfg.Contacts.Delete)

	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"error":   "Route not found",
		"message": fmt.Sprintf("Cannot %s %s", c.Method(), c.OriginalURL()),
		"availableEndpoints": fiber.Map{
			"health":  "GET /health",
			"users":   "GET /api/users",
			"contact": "POST /api/contact",
			"root":    "GET /",
		},
	})
}
