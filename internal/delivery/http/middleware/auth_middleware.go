package middleware

import (
	"context"
	"errors"
	"strings"

	"skillified/internal/domain"
	"skillified/internal/pkg/jwt"
	"skillified/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxActorKey = "actor"

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (domain.Actor, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Middleware rejects requests without a valid access token and stores the
// resolved actor in the request locals.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		actor, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			case errors.Is(err, usecase.ErrSessionRevoked):
				return NewAppError(fiber.StatusUnauthorized, "Session revoked", nil, err)
			case errors.Is(err, jwt.ErrTokenInvalid), errors.Is(err, usecase.ErrUnauthorized):
				return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
			default:
				return NewAppError(fiber.StatusInternalServerError, "", nil, err)
			}
		}

		c.Locals(CtxActorKey, actor)
		return c.Next()
	}
}

// ActorFrom returns the actor stored by the auth middleware.
func ActorFrom(c fiber.Ctx) (domain.Actor, bool) {
	actor, ok := c.Locals(CtxActorKey).(domain.Actor)
	if !ok || !actor.IsAuthenticated() {
		return domain.Anonymous(), false
	}
	return actor, true
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
