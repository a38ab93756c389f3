package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewCache(rdb)
	ctx := context.Background()

	type payload struct {
		Name  string   `json:"name"`
		Tags  []string `json:"tags"`
		Count int      `json:"count"`
	}

	var miss payload
	found, err := cache.Get(ctx, "hotels:1", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "hotels:1", payload{Name: "Eko", Tags: []string{"pool"}, Count: 2}, time.Minute))

	var got payload
	found, err = cache.Get(ctx, "hotels:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Eko", got.Name)
	assert.Equal(t, []string{"pool"}, got.Tags)

	mr.FastForward(2 * time.Minute)
	found, err = cache.Get(ctx, "hotels:1", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry should expire")
}

func TestRedisCacheDeletePrefix(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewCache(rdb)
	ctx := context.Background()

	for _, k := range []string{CacheKeyHotelsAll, hotelCacheKey(1), CacheKeyHotelsState + "LAGOS", "bookings:user:9"} {
		require.NoError(t, cache.Set(ctx, k, 1, time.Hour))
	}

	require.NoError(t, cache.DeletePrefix(ctx, CacheKeyHotelPrefix))

	assert.False(t, mr.Exists(CacheKeyHotelsAll))
	assert.False(t, mr.Exists("hotels:1"))
	assert.False(t, mr.Exists("hotels:state:LAGOS"))
	assert.True(t, mr.Exists("bookings:user:9"))
}

func TestNopCache(t *testing.T) {
	cache := NewCache(nil)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", 1, time.Minute))
	var v int
	found, err := cache.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, cache.DeletePrefix(ctx, "k"))
}
