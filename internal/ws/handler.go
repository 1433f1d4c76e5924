package ws

import (
	"context"
	"net/http"
	"strings"

	"skillified/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (domain.Actor, error)
}

type Handler struct {
	hub    *Hub
	auth   Authenticator
	logger *zap.Logger
}

func NewHandler(hub *Hub, auth Authenticator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, auth: auth, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleNotifications authenticates with the token query parameter before
// upgrading, since browsers cannot set headers on websocket requests.
func (h *Handler) HandleNotifications(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.auth == nil {
		return fiber.ErrServiceUnavailable
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return fiber.ErrUnauthorized
	}
	actor, err := h.auth.Authenticate(c.Context(), token)
	if err != nil || !actor.IsAuthenticated() {
		return fiber.ErrUnauthorized
	}

	upgrade := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", zap.Int64("user_id", actor.UserID), zap.Error(err))
			return
		}

		client, err := h.hub.Register(actor.UserID, conn)
		if err != nil {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
			_ = conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	})

	return upgrade(c)
}
