package bucket

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kredita/internal/ratelimit/models"
)

func newTestRedisStore(t *testing.T, now *time.Time) (*RedisBucketStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisBucketStore(client)
	store.now = func() time.Time { return *now }
	return store, mr
}

func TestRedisBucketStore(t *testing.T) {
	ctx := t.Context()
	limit := models.Limit{RequestsPerWindow: 2, Window: time.Minute}
	now := time.Date(2026, 3, 1, 12, 0, 15, 0, time.UTC)
	store, mr := newTestRedisStore(t, &now)

	t.Run("counts within the window", func(t *testing.T) {
		first, err := store.Allow(ctx, "ip:a", limit)
		require.NoError(t, err)
		assert.True(t, first.Allowed)
		assert.Equal(t, 1, first.Remaining)

		second, err := store.Allow(ctx, "ip:a", limit)
		require.NoError(t, err)
		assert.True(t, second.Allowed)
		assert.Equal(t, 0, second.Remaining)

		third, err := store.Allow(ctx, "ip:a", limit)
		require.NoError(t, err)
		assert.False(t, third.Allowed)
		assert.Equal(t, 45, third.RetryAfter)
		assert.Equal(t, time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC), third.ResetAt)
	})

	t.Run("counter expires with the window", func(t *testing.T) {
		key := redisKeyPrefix + "ip:a:" + "1772366400"
		assert.True(t, mr.Exists(key))
		assert.Equal(t, time.Minute, mr.TTL(key))
	})

	t.Run("next window starts fresh", func(t *testing.T) {
		now = now.Add(time.Minute)
		result, err := store.Allow(ctx, "ip:a", limit)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 1, result.Remaining)
	})

	t.Run("unreachable redis is an error", func(t *testing.T) {
		mr.Close()
		_, err := store.Allow(ctx, "ip:b", limit)
		assert.Error(t, err)
	})
}
