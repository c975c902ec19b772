package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores fetched page bodies as raw bytes under {prefix}:cache:page:{url}
// ⭐ SSOT: 페이지 캐시는 여기서만
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a page cache on the client
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// PageKey builds the cache key suffix for a page URL
func PageKey(url string) string {
	return "page:" + url
}

func (c *Cache) key(url string) string {
	return fmt.Sprintf("%s:cache:%s", c.prefix, PageKey(url))
}

// Get returns the cached body of url. A miss is (nil, false, nil);
// only connection-level failures are errors.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	if !c.client.Enabled() {
		return nil, false, nil
	}

	body, err := c.client.rdb.Get(ctx, c.key(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("page cache get: %w", err)
	}
	return body, true, nil
}

// Set stores body for ttl. Empty bodies are never cached so a transient
// blank page is refetched on the next run.
func (c *Cache) Set(ctx context.Context, url string, body []byte, ttl time.Duration) error {
	if !c.client.Enabled() || len(body) == 0 || ttl <= 0 {
		return nil
	}
	if err := c.client.rdb.Set(ctx, c.key(url), body, ttl).Err(); err != nil {
		return fmt.Errorf("page cache set: %w", err)
	}
	return nil
}
