package redis

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// slidingWindow trims the window, then admits the request when the
// count is below the limit. Members are unique per call so requests in
// the same millisecond are all counted.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local limit = tonumber(ARGV[2])
	local window_ms = tonumber(ARGV[3])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window_ms)
	if redis.call('ZCARD', key) < limit then
		redis.call('ZADD', key, now, ARGV[4])
		redis.call('PEXPIRE', key, window_ms)
		return 1
	end
	return 0
`)

// RateLimiter is a request budget shared by every process using the same Redis
// ⭐ SSOT: 프로세스 간 레이트 리밋은 여기서만
type RateLimiter struct {
	client *Client
	prefix string
	seq    atomic.Uint64
}

// RateLimitConfig defines one budget: Limit requests per Window
type RateLimitConfig struct {
	Key    string
	Limit  int
	Window time.Duration
}

// VLRRateLimit derives the shared per-second budget from REQUEST_DELAY,
// at least one request per second
func VLRRateLimit(requestDelay time.Duration) RateLimitConfig {
	limit := 1
	if requestDelay > 0 && requestDelay < time.Second {
		limit = int(time.Second / requestDelay)
	}
	return RateLimitConfig{
		Key:    "vlr",
		Limit:  limit,
		Window: time.Second,
	}
}

// ForHost scopes the budget to one origin ("vlr:www.vlr.gg")
func (c RateLimitConfig) ForHost(host string) RateLimitConfig {
	if host != "" {
		c.Key = c.Key + ":" + host
	}
	return c
}

// NewRateLimiter creates a limiter on the client
func NewRateLimiter(client *Client, prefix string) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
	}
}

// Wait blocks until the budget admits a request or ctx ends.
// A disabled client admits everything.
func (r *RateLimiter) Wait(ctx context.Context, cfg RateLimitConfig) error {
	if !r.client.Enabled() {
		return nil
	}
	if cfg.Limit <= 0 || cfg.Window <= 0 {
		return fmt.Errorf("invalid rate limit %d per %s", cfg.Limit, cfg.Window)
	}

	key := fmt.Sprintf("%s:ratelimit:%s", r.prefix, cfg.Key)
	// 한도 도달 시 창을 limit 등분한 간격으로 재시도
	backoff := cfg.Window / time.Duration(cfg.Limit)

	for {
		now := time.Now().UnixMilli()
		member := fmt.Sprintf("%d-%d", now, r.seq.Add(1))
		admitted, err := slidingWindow.Run(ctx, r.client.rdb, []string{key},
			now, cfg.Limit, cfg.Window.Milliseconds(), member).Int()
		if err != nil {
			return fmt.Errorf("rate limit script failed: %w", err)
		}
		if admitted == 1 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}
