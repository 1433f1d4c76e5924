package v1

import (
	"skillified/internal/delivery/http/handler"
	"skillified/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Skills   *handler.SkillHandler
	Events   *handler.EventHandler
	Profile  *handler.ProfileHandler
	Settings *handler.SettingsHandler
	Contact  *handler.ContactHandler
	Messages *handler.MessageHandler
	WS       *ws.Handler
}

func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r)
	}
	if h.Contact != nil {
		h.Contact.RegisterRoutes(r)
	}
	if h.WS != nil {
		// The socket authenticates from its query string.
		r.Get("/ws", h.WS.HandleNotifications)
	}

	RegisterCatalog(r, h, auth)
	RegisterAccount(r, h, auth)
}
