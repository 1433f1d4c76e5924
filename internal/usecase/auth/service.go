package auth

import (
	"context"
	"errors"
	"strings"

	"skillified/internal/domain"
	"skillified/internal/domain/user"
	"skillified/internal/repository"

	"github.com/asaskevich/govalidator"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInternal           = errors.New("internal error")
)

const msgUsernameTaken = "A user with that username already exists."

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

// Service owns credential checks. Token issuance lives one layer up.
type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

// Register creates the user together with its profile and notification
// settings.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)

	verr := &domain.ValidationError{}
	if username == "" {
		verr.Add("username", domain.MsgFieldRequired)
	}
	if email != "" && !govalidator.IsEmail(email) {
		verr.Add("email", domain.MsgInvalidEmail)
	}
	if in.Password == "" {
		verr.Add("password", domain.MsgFieldRequired)
	} else if msg := ComplexityError(in.Password); msg != "" {
		verr.Add("password", msg)
	}
	if err := verr.OrNil(); err != nil {
		return user.User{}, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	var created user.User
	err = s.store.InTx(ctx, func(tx repository.Store) error {
		u, err := tx.Users().Create(ctx, user.User{Username: username, Email: email, PasswordHash: hash})
		if err != nil {
			return err
		}
		if _, err := tx.Profiles().Ensure(ctx, u.ID); err != nil {
			return err
		}
		if _, err := tx.NotificationSettings().Ensure(ctx, u.ID); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return user.User{}, domain.NewFieldError("username", msgUsernameTaken)
		}
		return user.User{}, errors.Join(ErrInternal, err)
	}
	return created.Sanitized(), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, errors.Join(ErrInternal, err)
	}

	if !CheckPassword(u.PasswordHash, in.Password) {
		return user.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
