package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kredita/internal/brand/models"
	"kredita/pkg/platform/sentinel"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, 5*time.Minute), mr
}

func TestRedisCache(t *testing.T) {
	ctx := t.Context()
	c, mr := newTestCache(t)
	set := models.Set{
		Brand:  models.Brand{UUID: "b-1", Name: "Acme", Theme: models.ThemeFrom("#336699")},
		APIKey: "brand-key",
	}

	t.Run("miss returns not found", func(t *testing.T) {
		_, err := c.Get(ctx, "b-1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("hit returns the stored set", func(t *testing.T) {
		require.NoError(t, c.Put(ctx, "b-1", set))

		got, err := c.Get(ctx, "b-1")
		require.NoError(t, err)
		assert.Equal(t, set, *got)
		assert.Equal(t, 5*time.Minute, mr.TTL(brandKeyPrefix+"b-1"))
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, c.Put(ctx, "b-2", set))
		mr.FastForward(6 * time.Minute)

		_, err := c.Get(ctx, "b-2")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("corrupt entry is an error", func(t *testing.T) {
		require.NoError(t, mr.Set(brandKeyPrefix+"b-3", "{not json"))
		_, err := c.Get(ctx, "b-3")
		require.Error(t, err)
		assert.NotErrorIs(t, err, sentinel.ErrNotFound)
	})
}
