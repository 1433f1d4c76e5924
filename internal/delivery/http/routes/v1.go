package routes

import (
	"skillified/internal/delivery/http/handler"
	v1 "skillified/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, health *handler.HealthHandler, handlers v1.Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	if health != nil {
		health.RegisterRoutes(r)
	}
	v1.Register(r, handlers, auth)
}
