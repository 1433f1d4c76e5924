package usecase

import (
	"context"
	"strings"

	"skillified/internal/domain"
	"skillified/internal/domain/user"
	"skillified/internal/pkg/jwt"
	"skillified/internal/repository"
	ucauth "skillified/internal/usecase/auth"

	"github.com/asaskevich/govalidator"
)

// SettingsPatch is one submission of the settings form. Username and Email
// apply only when non-empty. The boolean flags always overwrite; an unchecked
// box arrives as false. The password triple is considered only when
// NewPassword is non-empty.
type SettingsPatch struct {
	Username *string
	Email    *string

	CurrentPassword string
	NewPassword     string
	ConfirmPassword string

	NewMessage bool
	NewEvent   bool
	NewSkill   bool
	IsMentor   bool
}

type SettingsView struct {
	Username      string
	Email         string
	IsMentor      bool
	Notifications user.NotificationSetting
}

type SettingsResult struct {
	Settings SettingsView
	// Tokens is set when the password changed and every earlier token was
	// revoked.
	Tokens *jwt.Pair
}

type SettingsUsecase interface {
	GetSettings(ctx context.Context, actor domain.Actor) (SettingsView, error)
	UpdateSettings(ctx context.Context, actor domain.Actor, patch SettingsPatch) (SettingsResult, error)
}

type Settings struct {
	store       repository.Store
	jwt         jwt.Service
	sessions    *SessionVersions
	invalidator *CatalogInvalidator
}

func NewSettingsUsecase(store repository.Store, jwtSvc jwt.Service, sessions *SessionVersions, invalidator *CatalogInvalidator) *Settings {
	return &Settings{store: store, jwt: jwtSvc, sessions: sessions, invalidator: invalidator}
}

func (u *Settings) GetSettings(ctx context.Context, actor domain.Actor) (SettingsView, error) {
	if err := requireAuthenticated(actor); err != nil {
		return SettingsView{}, err
	}
	return loadSettings(ctx, u.store, actor.UserID)
}

func loadSettings(ctx context.Context, st repository.Store, userID int64) (SettingsView, error) {
	usr, err := st.Users().GetByID(ctx, userID)
	if err != nil {
		return SettingsView{}, translate(err, userID)
	}
	p, err := st.Profiles().Ensure(ctx, userID)
	if err != nil {
		return SettingsView{}, translate(err, userID)
	}
	ns, err := st.NotificationSettings().Ensure(ctx, userID)
	if err != nil {
		return SettingsView{}, translate(err, userID)
	}
	return SettingsView{
		Username:      usr.Username,
		Email:         usr.Email,
		IsMentor:      p.IsMentor,
		Notifications: ns,
	}, nil
}

// checkPasswordChange runs the password sub-protocol. Each step
// short-circuits with its own message.
func checkPasswordChange(hash string, patch SettingsPatch) error {
	switch {
	case patch.ConfirmPassword == "":
		return domain.NewFieldError("confirm_password", ucauth.MsgConfirmPassword)
	case !ucauth.CheckPassword(hash, patch.CurrentPassword):
		return domain.NewFieldError("current_password", ucauth.MsgCurrentPassword)
	}
	if msg := ucauth.ComplexityError(patch.NewPassword); msg != "" {
		return domain.NewFieldError("new_password", msg)
	}
	if patch.NewPassword != patch.ConfirmPassword {
		return domain.NewFieldError("confirm_password", ucauth.MsgPasswordsDontMatch)
	}
	return nil
}

// UpdateSettings applies the whole patch atomically: a failed password change
// leaves account, mentor and notification fields untouched too.
func (u *Settings) UpdateSettings(ctx context.Context, actor domain.Actor, patch SettingsPatch) (SettingsResult, error) {
	if err := requireAuthenticated(actor); err != nil {
		return SettingsResult{}, err
	}

	var email string
	if patch.Email != nil {
		email = normalizeEmail(*patch.Email)
		if email != "" && !govalidator.IsEmail(email) {
			return SettingsResult{}, domain.NewFieldError("email", domain.MsgInvalidEmail)
		}
	}

	var (
		view            SettingsView
		mentorChanged   bool
		passwordChanged bool
		usr             user.User
	)
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		var err error
		usr, err = tx.Users().GetByID(ctx, actor.UserID)
		if err != nil {
			return translate(err, actor.UserID)
		}

		var newHash string
		if patch.NewPassword != "" {
			if err := checkPasswordChange(usr.PasswordHash, patch); err != nil {
				return err
			}
			if newHash, err = ucauth.HashPassword(patch.NewPassword); err != nil {
				return internalError(err)
			}
		}

		username := usr.Username
		if patch.Username != nil {
			if s := strings.TrimSpace(*patch.Username); s != "" {
				username = s
			}
		}
		if email == "" {
			email = usr.Email
		}
		if username != usr.Username || email != usr.Email {
			if err := tx.Users().UpdateAccount(ctx, usr.ID, username, email); err != nil {
				return translate(err, usr.ID)
			}
			usr.Username, usr.Email = username, email
		}

		p, err := tx.Profiles().Ensure(ctx, usr.ID)
		if err != nil {
			return translate(err, usr.ID)
		}
		if p.IsMentor != patch.IsMentor {
			p.IsMentor = patch.IsMentor
			if _, err := tx.Profiles().Update(ctx, p); err != nil {
				return translate(err, usr.ID)
			}
			mentorChanged = true
		}

		if _, err := tx.NotificationSettings().Save(ctx, user.NotificationSetting{
			UserID:     usr.ID,
			NewMessage: patch.NewMessage,
			NewEvent:   patch.NewEvent,
			NewSkill:   patch.NewSkill,
		}); err != nil {
			return translate(err, usr.ID)
		}

		if newHash != "" {
			version, err := tx.Users().UpdatePassword(ctx, usr.ID, newHash)
			if err != nil {
				return translate(err, usr.ID)
			}
			usr.TokenVersion = version
			passwordChanged = true
		}

		view, err = loadSettings(ctx, tx, usr.ID)
		return err
	})
	if err != nil {
		return SettingsResult{}, err
	}

	if mentorChanged {
		// mentor_only listings depend on the flag.
		u.invalidator.Invalidate(ctx)
	}

	res := SettingsResult{Settings: view}
	if passwordChanged {
		if u.sessions != nil {
			u.sessions.Forget(ctx, usr.ID)
		}
		pair, err := u.jwt.GeneratePair(usr.ID, usr.Username, usr.TokenVersion)
		if err != nil {
			return SettingsResult{}, internalError(err)
		}
		res.Tokens = &pair
	}
	return res, nil
}
