package usecase

import (
	"context"
	"strconv"
	"time"

	"skillified/internal/repository"

	"go.uber.org/zap"
)

// SessionVersions reads a user's current token version through the cache.
type SessionVersions struct {
	store  repository.Store
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionVersions(store repository.Store, cache Cache, ttl time.Duration, logger *zap.Logger) *SessionVersions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionVersions{store: store, cache: cacheOrNop(cache), ttl: ttl, logger: logger}
}

func sessionVersionKey(userID int64) string {
	return "session:version:" + strconv.FormatInt(userID, 10)
}

func (s *SessionVersions) Current(ctx context.Context, userID int64) (int, error) {
	key := sessionVersionKey(userID)

	var version int
	if ok, err := s.cache.GetJSON(ctx, key, &version); err == nil && ok {
		return version, nil
	}

	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.SetJSON(ctx, key, u.TokenVersion, s.ttl); err != nil {
		s.logger.Debug("session version cache write failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	return u.TokenVersion, nil
}

// Forget drops the cached version so the next lookup reads the store.
func (s *SessionVersions) Forget(ctx context.Context, userID int64) {
	if err := s.cache.Delete(ctx, sessionVersionKey(userID)); err != nil {
		s.logger.Warn("session version cache delete failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}
