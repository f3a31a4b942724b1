package routes

import (
	"github.com/gofiber/fiber/v2"

	"jobboard/internal/handlers"
	"jobboard/internal/middleware"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Jobs *handlers.JobHandler
	Auth *handlers.AuthHandler
}

// Register mounts all HTTP routes in one place.
// Keep paths lowercase, grouped by resource, and easy to discover.
func Register(app *fiber.App, d Deps) {
	api := app.Group("/api")

	// ============================================================
	// Auth
	// ============================================================
	auth := api.Group("/auth")
	auth.Post("/register", d.Auth.Register)
	auth.Post("/login", d.Auth.Login)
	auth.Get("/me", middleware.RequireAuth(), d.Auth.Me)

	// ============================================================
	// Jobs
	// ============================================================
	jobs := api.Group("/jobs")

	// GET /api/jobs?search=&location=&type=&remote=&page=&limit=
	jobs.Get("/", d.Jobs.List)

	// caller-scoped lists; must be mounted before /:id
	jobs.Get("/my/posted", middleware.RequireAuth(), d.Jobs.MyPosted)
	jobs.Get("/my/applications", middleware.RequireAuth(), d.Jobs.MyApplications)

	jobs.Get("/:id", d.Jobs.Get)
	jobs.Post("/", middleware.RequireAuth(), d.Jobs.Create)
	jobs.Put("/:id", middleware.RequireAuth(), d.Jobs.Update)
	jobs.Delete("/:id", middleware.RequireAuth(), d.Jobs.Delete)
	jobs.Post("/:id/apply", middleware.RequireAuth(), d.Jobs.Apply)

	// ============================================================
	// Misc
	// ============================================================

	// Health check
	// GET /api/healthz → "ok"
	api.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
