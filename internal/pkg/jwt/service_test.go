package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
}

func TestGeneratePair_RoundTrip(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GeneratePair(7, "alice", 3)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), access.UserID)
	assert.Equal(t, "alice", access.Username)
	assert.Equal(t, 3, access.Version)
	assert.Equal(t, "7", access.Subject)
	assert.NotEmpty(t, access.ID)

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), refresh.UserID)
	assert.Equal(t, 3, refresh.Version)
}

func TestValidate_RejectsWrongTokenType(t *testing.T) {
	svc := newTestService()
	pair, err := svc.GeneratePair(1, "bob", 1)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Expired(t *testing.T) {
	svc := newTestService()
	issued := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	pair, err := svc.GeneratePair(1, "bob", 1)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestGeneratePair_RequiresConfiguration(t *testing.T) {
	svc := NewHMACService("", "refresh", time.Minute, time.Minute)
	_, err := svc.GeneratePair(1, "bob", 1)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = newTestService().GeneratePair(0, "nobody", 1)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
