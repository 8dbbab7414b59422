package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepoint/pulsepoint-api/internal/config"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)

	link := models.MagicLink{
		Token:     "opaque-token",
		UserUID:   "user-1",
		Email:     "a@x.com",
		ExpiresAt: time.Now().Add(15 * time.Minute).UTC(),
	}
	require.NoError(t, cache.Set("magiclink:opaque-token", link, 15*time.Minute))

	var got models.MagicLink
	found, err := cache.Get("magiclink:opaque-token", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, link.UserUID, got.UserUID)
	assert.Equal(t, link.Email, got.Email)
}

func TestGet_MissingKey(t *testing.T) {
	cache, _ := setupTestCache(t)

	var got models.MagicLink
	found, err := cache.Get("magiclink:absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)

	require.NoError(t, cache.Set("key", "value", time.Minute))
	require.NoError(t, cache.Invalidate("key"))

	var got string
	found, err := cache.Get("key", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSet_ExpirationHonored(t *testing.T) {
	cache, mr := setupTestCache(t)

	require.NoError(t, cache.Set("key", "value", time.Minute))
	mr.FastForward(2 * time.Minute)

	var got string
	found, err := cache.Get("key", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
