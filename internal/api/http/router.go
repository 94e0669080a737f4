package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/careers-portal/internal/api/http/handlers"
	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role gates on route groups are a first
// line only; the service layer re-checks roles and ownership per operation.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	// Public browsing.
	app.Get("/jobs", cfg.Jobs.ListOpen)
	app.Get("/jobs/:id", cfg.Jobs.GetOpen)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/profile", cfg.Profile.Get)
	protected.Put("/profile", cfg.Profile.Update)

	applications := protected.Group("/applications")
	applications.Post("", auth.RequireRole(domain.RoleStudent), cfg.Applications.Apply)
	applications.Get("", auth.RequireRole(domain.RoleStudent), cfg.Applications.ListMine)
	applications.Get("/:id", cfg.Applications.Get)
	applications.Delete("/:id", cfg.Applications.Cancel)
	applications.Patch("/:id/status", auth.RequireRole(domain.RoleEmployer, domain.RoleAdmin), cfg.Applications.UpdateStatus)

	employer := protected.Group("/employer", auth.RequireRole(domain.RoleEmployer, domain.RoleAdmin))
	employer.Post("/jobs", cfg.Jobs.Create)
	employer.Get("/jobs", cfg.Jobs.ListOwned)
	employer.Get("/jobs/:id", cfg.Jobs.GetOwned)
	employer.Put("/jobs/:id", cfg.Jobs.Update)
	employer.Patch("/jobs/:id/status", cfg.Jobs.SetStatus)
	employer.Get("/jobs/:id/applications", cfg.Jobs.ListApplications)
	employer.Get("/stats/jobs", cfg.Jobs.ActiveJobCount)
	employer.Get("/stats/applications", cfg.Jobs.ApplicationCount)

	admin := protected.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:id", cfg.Admin.GetUser)
	admin.Patch("/users/:id/role", cfg.Admin.ChangeRole)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/applications", cfg.Admin.ListApplications)
}
