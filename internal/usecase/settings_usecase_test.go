package usecase

import (
	"context"
	"testing"
	"time"

	"skillified/internal/domain"
	"skillified/internal/domain/user"
	"skillified/internal/pkg/jwt"
	ucauth "skillified/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const currentPassword = "Secret123"

type settingsFixture struct {
	*fixture
	jwt      *jwt.HMACService
	auth     *Auth
	settings *Settings
	alice    user.User
}

func newSettingsFixture(t *testing.T) *settingsFixture {
	t.Helper()
	f := newFixture(t)
	jwtSvc := jwt.NewHMACService("access", "refresh", time.Hour, 24*time.Hour)
	sessions := NewSessionVersions(f.store, nil, time.Minute, nil)

	auth := NewAuthUsecase(f.store, jwtSvc, sessions)
	alice, _, err := auth.Register(context.Background(), ucauth.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: currentPassword,
	})
	require.NoError(t, err)

	return &settingsFixture{
		fixture:  f,
		jwt:      jwtSvc,
		auth:     auth,
		settings: NewSettingsUsecase(f.store, jwtSvc, sessions, NewCatalogInvalidator(nil, nil)),
		alice:    alice,
	}
}

func (f *settingsFixture) actorAlice() domain.Actor {
	return domain.Actor{UserID: f.alice.ID}
}

func (f *settingsFixture) storedHash(t *testing.T) string {
	t.Helper()
	u, err := f.store.Users().GetByID(context.Background(), f.alice.ID)
	require.NoError(t, err)
	return u.PasswordHash
}

func TestUpdateSettings_PasswordRulesInOrder(t *testing.T) {
	f := newSettingsFixture(t)
	before := f.storedHash(t)

	tests := []struct {
		name    string
		patch   SettingsPatch
		field   string
		message string
	}{
		{
			name:    "confirm missing",
			patch:   SettingsPatch{CurrentPassword: "wrong", NewPassword: "short1"},
			field:   "confirm_password",
			message: ucauth.MsgConfirmPassword,
		},
		{
			name:    "current incorrect",
			patch:   SettingsPatch{CurrentPassword: "wrong", NewPassword: "short1", ConfirmPassword: "x"},
			field:   "current_password",
			message: ucauth.MsgCurrentPassword,
		},
		{
			name:    "too short",
			patch:   SettingsPatch{CurrentPassword: currentPassword, NewPassword: "short1", ConfirmPassword: "short1"},
			field:   "new_password",
			message: ucauth.MsgPasswordLength,
		},
		{
			name:    "no digit",
			patch:   SettingsPatch{CurrentPassword: currentPassword, NewPassword: "Abcdefgh", ConfirmPassword: "Abcdefgh"},
			field:   "new_password",
			message: ucauth.MsgPasswordDigit,
		},
		{
			name:    "no letter",
			patch:   SettingsPatch{CurrentPassword: currentPassword, NewPassword: "12345678", ConfirmPassword: "12345678"},
			field:   "new_password",
			message: ucauth.MsgPasswordLetter,
		},
		{
			name:    "no uppercase",
			patch:   SettingsPatch{CurrentPassword: currentPassword, NewPassword: "abcdefg1", ConfirmPassword: "abcdefg1"},
			field:   "new_password",
			message: ucauth.MsgPasswordUpper,
		},
		{
			name:    "no lowercase",
			patch:   SettingsPatch{CurrentPassword: currentPassword, NewPassword: "ABCDEFG1", ConfirmPassword: "ABCDEFG1"},
			field:   "new_password",
			message: ucauth.MsgPasswordLower,
		},
		{
			name:    "mismatch",
			patch:   SettingsPatch{CurrentPassword: currentPassword, NewPassword: "Abcdefg1", ConfirmPassword: "Abcdefg2"},
			field:   "confirm_password",
			message: ucauth.MsgPasswordsDontMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.settings.UpdateSettings(context.Background(), f.actorAlice(), tt.patch)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, map[string]string{tt.field: tt.message}, verr.Fields)
			assert.Equal(t, before, f.storedHash(t))
		})
	}
}

func TestUpdateSettings_FailedPasswordChangeAppliesNothing(t *testing.T) {
	f := newSettingsFixture(t)
	ctx := context.Background()

	_, err := f.settings.UpdateSettings(ctx, f.actorAlice(), SettingsPatch{
		Username:        strPtr("alice2"),
		Email:           strPtr("new@example.com"),
		CurrentPassword: "wrong",
		NewPassword:     "Abcdefg1",
		ConfirmPassword: "Abcdefg1",
		IsMentor:        true,
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	view, err := f.settings.GetSettings(ctx, f.actorAlice())
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, "alice@example.com", view.Email)
	assert.False(t, view.IsMentor)
	assert.True(t, view.Notifications.NewMessage)
	assert.True(t, view.Notifications.NewEvent)
	assert.True(t, view.Notifications.NewSkill)
}

func TestUpdateSettings_AccountAndFlags(t *testing.T) {
	f := newSettingsFixture(t)
	ctx := context.Background()
	f.actor(t, "taken", false)

	res, err := f.settings.UpdateSettings(ctx, f.actorAlice(), SettingsPatch{
		Username: strPtr("  "),
		Email:    strPtr("Alice@Example.org"),
		NewEvent: true,
		IsMentor: true,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Tokens)
	assert.Equal(t, "alice", res.Settings.Username)
	assert.Equal(t, "alice@example.org", res.Settings.Email)
	assert.True(t, res.Settings.IsMentor)
	assert.False(t, res.Settings.Notifications.NewMessage)
	assert.True(t, res.Settings.Notifications.NewEvent)
	assert.False(t, res.Settings.Notifications.NewSkill)

	_, err = f.settings.UpdateSettings(ctx, f.actorAlice(), SettingsPatch{Username: strPtr("taken")})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgUsernameTaken, verr.Fields["username"])

	_, err = f.settings.UpdateSettings(ctx, f.actorAlice(), SettingsPatch{Email: strPtr("nope")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateSettings_PasswordChangeRevokesOldTokens(t *testing.T) {
	f := newSettingsFixture(t)
	ctx := context.Background()

	_, oldPair, err := f.auth.Login(ctx, ucauth.LoginInput{Username: "alice", Password: currentPassword})
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, oldPair.AccessToken)
	require.NoError(t, err)

	res, err := f.settings.UpdateSettings(ctx, f.actorAlice(), SettingsPatch{
		CurrentPassword: currentPassword,
		NewPassword:     "N3wSecret",
		ConfirmPassword: "N3wSecret",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Tokens)

	_, err = f.auth.Authenticate(ctx, oldPair.AccessToken)
	assert.ErrorIs(t, err, ErrSessionRevoked)
	_, err = f.auth.Refresh(ctx, oldPair.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionRevoked)

	actor, err := f.auth.Authenticate(ctx, res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, actor.UserID)

	_, _, err = f.auth.Login(ctx, ucauth.LoginInput{Username: "alice", Password: currentPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, ucauth.LoginInput{Username: "alice", Password: "N3wSecret"})
	assert.NoError(t, err)
}
