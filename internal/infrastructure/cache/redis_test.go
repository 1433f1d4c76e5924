package cache

import (
	"context"
	"testing"
	"time"

	"skillified/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFromClient(client, time.Minute, nil), mr
}

func TestRedis_JSONRoundTripAndTTL(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	ok, err := r.GetJSON(ctx, "catalog:skills:x", &payload{})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.SetJSON(ctx, "catalog:skills:x", payload{Name: "Guitar", Count: 2}, 0))
	assert.Equal(t, time.Minute, mr.TTL("catalog:skills:x"))

	var got payload
	ok, err = r.GetJSON(ctx, "catalog:skills:x", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Name: "Guitar", Count: 2}, got)

	mr.FastForward(2 * time.Minute)
	ok, err = r.GetJSON(ctx, "catalog:skills:x", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_DeleteByPattern(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "catalog:skills:a", 1, 0))
	require.NoError(t, r.SetJSON(ctx, "catalog:events:b", 2, 0))
	require.NoError(t, r.SetJSON(ctx, "session:version:1", 3, 0))

	require.NoError(t, r.DeleteByPattern(ctx, "catalog:*"))

	assert.False(t, mr.Exists("catalog:skills:a"))
	assert.False(t, mr.Exists("catalog:events:b"))
	assert.True(t, mr.Exists("session:version:1"))

	require.NoError(t, r.Delete(ctx, "session:version:1"))
	assert.False(t, mr.Exists("session:version:1"))
}

func TestRedis_DisabledBypasses(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, nil)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "k", 1, 0))
	var v int
	ok, err := r.GetJSON(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, r.DeleteByPattern(ctx, "*"))
	assert.Error(t, r.Ping(ctx))
	assert.NoError(t, r.Close())
}

func TestRedis_ServerDownFailsOpen(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()
	mr.Close()

	var v int
	ok, err := r.GetJSON(ctx, "k", &v)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.True(t, r.warnedUnavailable.Load())
}
