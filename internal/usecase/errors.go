package usecase

import (
	"errors"
	"fmt"

	"skillified/internal/domain"
	"skillified/internal/domain/event"
	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
	ucauth "skillified/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = ucauth.ErrInvalidCredentials
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrSessionRevoked      = errors.New("session revoked")
	ErrInternal            = errors.New("internal error")

	errNoPictureStore = errors.New("picture storage is not configured")
)

const (
	msgUsernameTaken = "A user with that username already exists."
	msgInvalidURL    = "Enter a valid URL."
)

func internalError(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// translate maps repository sentinels onto the domain error taxonomy. id is
// the identifier that was looked up; errors already in the taxonomy pass
// through unchanged.
func translate(err error, id int64) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAuthorization),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, ErrUnauthorized):
		return err
	case errors.Is(err, skill.ErrNotFound):
		return domain.NewNotFoundError("skill", id)
	case errors.Is(err, event.ErrNotFound):
		return domain.NewNotFoundError("event", id)
	case errors.Is(err, user.ErrNotFound):
		return domain.NewNotFoundError("user", id)
	case errors.Is(err, user.ErrUsernameTaken):
		return domain.NewFieldError("username", msgUsernameTaken)
	default:
		return internalError(err)
	}
}

func requireAuthenticated(actor domain.Actor) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthorized
	}
	return nil
}
