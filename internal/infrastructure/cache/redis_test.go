package cache

import (
	"context"
	"testing"
	"time"

	"applytrack/internal/config"
	"applytrack/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFromClient(client, time.Minute, logger.Nop()), mr
}

func TestRedis_JSONRoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	type item struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	require.NoError(t, r.SetJSON(ctx, "contacts:1", []item{{ID: "a", Name: "Jo"}}, 0))
	assert.Equal(t, time.Minute, mr.TTL("contacts:1"))

	var out []item
	hit, err := r.GetJSON(ctx, "contacts:1", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []item{{ID: "a", Name: "Jo"}}, out)

	mr.FastForward(2 * time.Minute)
	hit, err = r.GetJSON(ctx, "contacts:1", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedis_DeleteByPattern(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.SetJSON(ctx, "query:a", 1, 0))
	require.NoError(t, r.SetJSON(ctx, "query:b", 2, 0))
	require.NoError(t, r.SetJSON(ctx, "contacts:x", 3, 0))

	require.NoError(t, r.DeleteByPattern(ctx, "query:*"))
	assert.False(t, mr.Exists("query:a"))
	assert.False(t, mr.Exists("query:b"))
	assert.True(t, mr.Exists("contacts:x"))
}

func TestRedis_IncrIsReadableAsJSON(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	var gen int64
	hit, err := r.GetJSON(ctx, "contacts:x:gen", &gen)
	require.NoError(t, err)
	assert.False(t, hit)

	n, err := r.Incr(ctx, "contacts:x:gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = r.Incr(ctx, "contacts:x:gen")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, time.Duration(0), mr.TTL("contacts:x:gen"))

	hit, err = r.GetJSON(ctx, "contacts:x:gen", &gen)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(2), gen)
}

func TestRedis_Bypass(t *testing.T) {
	ctx := context.Background()

	var nilCache *Redis
	hit, err := nilCache.GetJSON(ctx, "k", new(int))
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, nilCache.SetJSON(ctx, "k", 1, 0))
	assert.NoError(t, nilCache.DeleteByPattern(ctx, "k*"))
	n, err := nilCache.Incr(ctx, "k")
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Error(t, nilCache.Ping(ctx))

	disabled := NewRedis(ctx, config.RedisConfig{}, logger.Nop())
	assert.NoError(t, disabled.SetJSON(ctx, "k", 1, 0))
	hit, err = disabled.GetJSON(ctx, "k", new(int))
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestRedis_ServerGoesAway(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	mr.Close()

	err := r.SetJSON(ctx, "k", 1, 0)
	assert.Error(t, err)
	_, err = r.Incr(ctx, "k:gen")
	assert.Error(t, err)
	assert.True(t, r.warnedUnavailable.Load())
}

func TestNewRedis_Connects(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(context.Background(), config.RedisConfig{Host: mr.Host(), Port: mr.Port(), TTL: time.Minute}, logger.Nop())
	defer func() { _ = r.Close() }()
	require.NoError(t, r.Ping(context.Background()))
}

