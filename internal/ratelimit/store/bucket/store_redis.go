package bucket

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"kredita/internal/ratelimit/models"
)

const redisKeyPrefix = "kredita:ratelimit:"

// RedisBucketStore counts requests in fixed windows shared by every instance.
// A window's counter expires one window after its last request.
type RedisBucketStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisBucketStore creates a store backed by client.
func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client, now: time.Now}
}

// Allow counts one request against key's current window.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit models.Limit) (*models.RateLimitResult, error) {
	now := s.now()
	windowStart := now.Truncate(limit.Window)
	resetAt := windowStart.Add(limit.Window)
	redisKey := redisKeyPrefix + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, limit.Window)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count request for %s: %w", key, err)
	}

	count := int(incr.Val())
	if count <= limit.RequestsPerWindow {
		return &models.RateLimitResult{
			Allowed:   true,
			Limit:     limit.RequestsPerWindow,
			Remaining: limit.RequestsPerWindow - count,
			ResetAt:   resetAt,
		}, nil
	}
	return &models.RateLimitResult{
		Allowed:    false,
		Limit:      limit.RequestsPerWindow,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: max(int(math.Ceil(resetAt.Sub(now).Seconds())), 1),
	}, nil
}
