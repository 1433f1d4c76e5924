package routes

import (
	"skillified/internal/delivery/http/handler"
	v1 "skillified/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	auth   fiber.Handler
}

// NewRegistry takes the auth middleware as a plain handler so routes can opt
// into it one by one; several prefixes mix public and protected routes.
func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers, auth fiber.Handler) *Registry {
	return &Registry{health: health, v1: handlers, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.health, r.v1, r.auth)
}
