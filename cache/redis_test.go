package cache

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisStore creates a miniredis instance and returns a connected store.
func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	_, hit, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, store.Set(ctx, "gravel:calc:abc", map[string]any{
		"Gmax [kPa]": 128000.0,
		"plugged":    false,
	}, 0))

	results, hit, err := store.Get(ctx, "gravel:calc:abc")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, 128000.0, results["Gmax [kPa]"])
	assert.Equal(t, false, results["plugged"])
}

func TestRedisStoreRoundTripsNaN(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", map[string]any{"Dr sat [-]": math.NaN()}, 0))

	results, hit, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, hit)

	f, ok := results["Dr sat [-]"].(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(f))
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", map[string]any{"result": 1.0}, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, hit, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNewRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore(RedisOptions{URL: "not-a-url"})
	require.Error(t, err)
}
