package v1

import "github.com/gofiber/fiber/v3"

func RegisterAccount(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Profile != nil {
		h.Profile.RegisterRoutes(r, auth)
	}
	if h.Settings != nil {
		h.Settings.RegisterRoutes(r, auth)
	}
	if h.Messages != nil {
		h.Messages.RegisterRoutes(r, auth)
	}
}
