package usecase

import (
	"context"
	"errors"

	"skillified/internal/domain"
	"skillified/internal/domain/user"
	"skillified/internal/pkg/jwt"
	"skillified/internal/repository"
	ucauth "skillified/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, jwt.Pair, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, jwt.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error)
	// Authenticate resolves an access token to the acting user.
	Authenticate(ctx context.Context, accessToken string) (domain.Actor, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	store    repository.Store
	jwt      jwt.Service
	sessions *SessionVersions
}

func NewAuthUsecase(store repository.Store, jwtSvc jwt.Service, sessions *SessionVersions) *Auth {
	return &Auth{authSvc: ucauth.NewService(store), store: store, jwt: jwtSvc, sessions: sessions}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, jwt.Pair, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return user.User{}, jwt.Pair{}, err
		}
		return user.User{}, jwt.Pair{}, internalError(err)
	}

	pair, err := u.jwt.GeneratePair(usr.ID, usr.Username, usr.TokenVersion)
	if err != nil {
		return user.User{}, jwt.Pair{}, internalError(err)
	}
	return usr, pair, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, jwt.Pair, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		if errors.Is(err, ucauth.ErrInvalidCredentials) {
			return user.User{}, jwt.Pair{}, ErrInvalidCredentials
		}
		return user.User{}, jwt.Pair{}, internalError(err)
	}

	pair, err := u.jwt.GeneratePair(usr.ID, usr.Username, usr.TokenVersion)
	if err != nil {
		return user.User{}, jwt.Pair{}, internalError(err)
	}
	return usr.Sanitized(), pair, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error) {
	if refreshToken == "" {
		return jwt.Pair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.Pair{}, ErrRefreshTokenExpired
		}
		return jwt.Pair{}, ErrInvalidRefreshToken
	}

	usr, err := u.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return jwt.Pair{}, ErrInvalidRefreshToken
		}
		return jwt.Pair{}, internalError(err)
	}
	if usr.TokenVersion != claims.Version {
		return jwt.Pair{}, ErrSessionRevoked
	}

	pair, err := u.jwt.GeneratePair(usr.ID, usr.Username, usr.TokenVersion)
	if err != nil {
		return jwt.Pair{}, internalError(err)
	}
	return pair, nil
}

func (u *Auth) Authenticate(ctx context.Context, accessToken string) (domain.Actor, error) {
	if accessToken == "" {
		return domain.Anonymous(), ErrUnauthorized
	}

	claims, err := u.jwt.ValidateAccessToken(accessToken)
	if err != nil {
		return domain.Anonymous(), err
	}

	version, err := u.sessions.Current(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return domain.Anonymous(), ErrUnauthorized
		}
		return domain.Anonymous(), internalError(err)
	}
	if version != claims.Version {
		return domain.Anonymous(), ErrSessionRevoked
	}

	profile, err := u.store.Profiles().Ensure(ctx, claims.UserID)
	if err != nil {
		return domain.Anonymous(), translate(err, claims.UserID)
	}
	return domain.Actor{UserID: claims.UserID, IsMentor: profile.IsMentor}, nil
}
