// Package redis connects the optional Redis backend shared by the brand cache
// and the distributed rate limiter.
package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"kredita/internal/platform/config"
)

// Client is a connected go-redis client. The embedded client is handed to the
// stores that need raw commands.
type Client struct {
	*redis.Client
	addr string
}

// New connects to cfg.URL and verifies the connection. An empty URL means
// Redis is not configured: New returns a nil client and no error, and callers
// fall back to in-process state.
func New(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := &Client{Client: redis.NewClient(opts), addr: opts.Addr}

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := client.Health(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis at %s unreachable: %w", opts.Addr, err)
	}

	logger.InfoContext(ctx, "redis connected", "addr", opts.Addr, "db", opts.DB, "pool_size", opts.PoolSize)
	return client, nil
}

// Addr is the host:port the client dials.
func (c *Client) Addr() string {
	return c.addr
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.Client.Close()
}
