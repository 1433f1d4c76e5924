package v1

import "github.com/gofiber/fiber/v3"

// RegisterCatalog wires skills and events. The catalog goes first so that
// /skills/popular is matched before /skills/:id.
func RegisterCatalog(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Catalog != nil {
		h.Catalog.RegisterRoutes(r, auth)
	}
	if h.Skills != nil {
		h.Skills.RegisterRoutes(r, auth)
	}
	if h.Events != nil {
		h.Events.RegisterRoutes(r, auth)
	}
}
