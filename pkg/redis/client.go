package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wonny/vctrank/pkg/config"
)

const pingTimeout = 3 * time.Second

// Client is the optional Redis connection behind the page cache and the
// shared request limiter. A disabled client turns both into no-ops.
// ⭐ SSOT: Redis 연결은 여기서만 관리
type Client struct {
	rdb *redis.Client
}

// New connects when REDIS_ENABLED is set and returns a disabled client otherwise.
// An unreachable server is an error: enabling Redis and silently scraping
// without the shared limit would break the cross-process request budget.
func New(cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", rdb.Options().Addr, err)
	}

	return &Client{rdb: rdb}, nil
}

// Enabled reports whether a connection is held
func (c *Client) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Close closes the connection, if any
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
