package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localserve/backend/internal/adapters/cache"
	"github.com/localserve/backend/internal/domain/providers"
	redisclient "github.com/localserve/backend/internal/infrastructure/clients/redis"
)

func newAdapter(t *testing.T) (providers.KeyValueStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return cache.NewRedisAdapter(redisclient.NewFromRedis(rdb)), mr
}

func TestRedisAdapter_RoundTrip(t *testing.T) {
	store, mr := newAdapter(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "localserve_reviews")
	assert.True(t, errors.Is(err, providers.ErrKeyNotFound))

	require.NoError(t, store.Set(ctx, "localserve_reviews", []byte(`[]`), 0))
	got, err := store.Get(ctx, "localserve_reviews")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	assert.Equal(t, time.Duration(0), mr.TTL("localserve_reviews"))

	exists, err := store.Exists(ctx, "localserve_reviews")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "localserve_reviews"))
	exists, err = store.Exists(ctx, "localserve_reviews")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisAdapter_Expiry(t *testing.T) {
	store, mr := newAdapter(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "review:dup:abc", []byte("1"), 60))
	assert.Equal(t, 60*time.Second, mr.TTL("review:dup:abc"))

	mr.FastForward(61 * time.Second)
	exists, err := store.Exists(ctx, "review:dup:abc")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisAdapter_ServerDown(t *testing.T) {
	store, mr := newAdapter(t)
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, providers.ErrKeyNotFound))
}
