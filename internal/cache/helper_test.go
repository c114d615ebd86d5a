package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withMiniredis points the package client at a fresh in-process Redis and
// restores the nil client afterwards.
func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		Client.Close()
		Client = nil
	})
	return mr
}

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	found, err := GetJSON(ctx, "missing", &cachedValue{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", cachedValue{Name: "alice", Count: 3}, time.Minute))

	var got cachedValue
	found, err = GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedValue{Name: "alice", Count: 3}, got)

	// SetJSON must apply the TTL.
	ttl := mr.TTL("k")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestCacheAside(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedValue) func() error {
		return func() error {
			fetches++
			dest.Name = "from-store"
			return nil
		}
	}

	// Miss: fetch runs and the result is cached.
	var first cachedValue
	require.NoError(t, CacheAside(ctx, "user:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "from-store", first.Name)
	assert.True(t, mr.Exists("user:1"))

	// Hit: served from Redis, fetch not called again.
	var second cachedValue
	require.NoError(t, CacheAside(ctx, "user:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "from-store", second.Name)

	// After expiry it is a miss again.
	mr.FastForward(2 * time.Minute)
	var third cachedValue
	require.NoError(t, CacheAside(ctx, "user:1", &third, time.Minute, fetch(&third)))
	assert.Equal(t, 2, fetches)
}

func TestHelpersDegradeWithoutRedis(t *testing.T) {
	require.Nil(t, Client)
	ctx := context.Background()

	found, err := GetJSON(ctx, "k", &cachedValue{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", cachedValue{}, time.Minute))

	// CacheAside falls through to the fetch on every call.
	fetches := 0
	for i := 0; i < 2; i++ {
		var v cachedValue
		require.NoError(t, CacheAside(ctx, "k", &v, time.Minute, func() error {
			fetches++
			v.Name = "direct"
			return nil
		}))
		assert.Equal(t, "direct", v.Name)
	}
	assert.Equal(t, 2, fetches)
}
