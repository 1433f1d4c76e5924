package handler

import (
	"errors"
	"strconv"

	"skillified/internal/delivery/http/middleware"
	"skillified/internal/domain"
	"skillified/internal/pkg/response"
	"skillified/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError turns the usecase error taxonomy into an AppError the error
// middleware can render.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *domain.ValidationError
	var authzErr *domain.AuthorizationError
	var nfErr *domain.NotFoundError

	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, response.MessageUnprocessableEntity, verr.Fields, err)
	case errors.As(err, &authzErr):
		return middleware.NewAppError(fiber.StatusForbidden, authzErr.Error(), nil, err)
	case errors.As(err, &nfErr):
		return middleware.NewAppError(fiber.StatusNotFound, nfErr.Error(), nil, err)
	case errors.Is(err, domain.ErrAuthorization):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, domain.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid username or password", nil, err)
	case errors.Is(err, usecase.ErrSessionRevoked):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Session revoked", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
}

func paramID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

// actorOf returns the authenticated actor or the anonymous one.
func actorOf(c fiber.Ctx) domain.Actor {
	actor, _ := middleware.ActorFrom(c)
	return actor
}
