package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kredita/internal/brand/models"
	"kredita/pkg/platform/sentinel"
)

const brandKeyPrefix = "kredita:brand:"

// RedisCache keeps resolved brand sets so repeated page loads for the same
// brand skip the core service round trips.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a cache whose entries expire after ttl.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached set for uuid, or sentinel.ErrNotFound.
func (c *RedisCache) Get(ctx context.Context, uuid string) (*models.Set, error) {
	raw, err := c.client.Get(ctx, brandKeyPrefix+uuid).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get brand %s: %w", uuid, err)
	}

	var set models.Set
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("decode brand %s: %w", uuid, err)
	}
	return &set, nil
}

// Put stores set under uuid with the cache TTL.
func (c *RedisCache) Put(ctx context.Context, uuid string, set models.Set) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode brand %s: %w", uuid, err)
	}
	return c.client.Set(ctx, brandKeyPrefix+uuid, raw, c.ttl).Err()
}
