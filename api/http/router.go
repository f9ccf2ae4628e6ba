package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/handlers"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/security/jwt"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Jobs          *handlers.JobHandler
	Applications  *handlers.ApplicationHandler
	Notifications *handlers.NotificationHandler
	Health        *handlers.HealthHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", h.Health.Health)
	api.Get("/ready", h.Health.Ready)

	a := api.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Get("/me", authMW, h.Auth.Me)
	a.Put("/update-profile", authMW, jwt.RequireRole(auth.RoleJobSeeker), h.Auth.UpdateProfile)

	j := api.Group("/jobs")
	j.Get("/", h.Jobs.List)
	j.Get("/:id", h.Jobs.Get)
	j.Post("/", authMW, jwt.RequireRole(auth.RoleRecruiter), h.Jobs.Create)

	ap := api.Group("/applications", authMW)
	ap.Post("/apply", jwt.RequireRole(auth.RoleJobSeeker), h.Applications.Apply)
	ap.Get("/my-applications", h.Applications.Mine)
	ap.Get("/job/:jobId", jwt.RequireRole(auth.RoleRecruiter), h.Applications.ForJob)
	ap.Patch("/:id/status", jwt.RequireRole(auth.RoleRecruiter), h.Applications.SetStatus)

	n := api.Group("/notifications", authMW)
	n.Get("/", h.Notifications.List)
	n.Get("/unread-count", h.Notifications.UnreadCount)
	n.Patch("/mark-all-read", h.Notifications.MarkAllRead)
}
