package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Cache is the JSON cache used for catalog reads and session versions.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (nopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, string) error { return nil }
func (nopCache) DeleteByPattern(context.Context, string) error { return nil }

func cacheOrNop(c Cache) Cache {
	if c == nil {
		return nopCache{}
	}
	return c
}

const catalogKeyPattern = "catalog:*"

// catalogCacheKey hashes the normalized request so arbitrary search text
// never ends up in a key.
func catalogCacheKey(kind string, params any) string {
	b, _ := json.Marshal(params)
	sum := sha256.Sum256(b)
	return "catalog:" + kind + ":" + hex.EncodeToString(sum[:])
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

// CatalogInvalidator drops every cached catalog read. Failures are logged;
// entries still expire with their TTL.
type CatalogInvalidator struct {
	cache  Cache
	logger *zap.Logger
}

func NewCatalogInvalidator(cache Cache, logger *zap.Logger) *CatalogInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogInvalidator{cache: cacheOrNop(cache), logger: logger}
}

func (i *CatalogInvalidator) Invalidate(ctx context.Context) {
	if i == nil {
		return
	}
	if err := i.cache.DeleteByPattern(ctx, catalogKeyPattern); err != nil {
		i.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
