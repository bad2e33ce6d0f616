package timeline

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// IndexKey caches the anonymous global feed, page 1. Nothing else is cached:
// every other feed carries viewer-specific state that must stay live.
const IndexKey = "feed:index"

// Cache memoizes rendered responses in redis for a bounded TTL. A cache hit
// replays the stored bytes untouched, so within the TTL window the response
// stays byte-identical no matter what happened to the underlying rows.
type Cache struct {
	redis *redis.Client
	group singleflight.Group
}

func NewCache(redisClient *redis.Client) *Cache {
	return &Cache{redis: redisClient}
}

// GetOrCompute returns the cached bytes for key, or runs compute and stores
// the result for ttl. Concurrent misses on the same key share a single
// compute via singleflight. With no redis configured it degrades to computing
// every time. The second return value reports a cache hit.
func (c *Cache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	if c.redis == nil {
		body, err := compute()
		return body, false, err
	}

	if val, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		return val, true, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// another flight may have populated the slot while we waited
		if val, err := c.redis.Get(ctx, key).Bytes(); err == nil {
			return val, nil
		}
		body, err := compute()
		if err != nil {
			return nil, err
		}
		if err := c.redis.Set(ctx, key, body, ttl).Err(); err != nil {
			log.Printf("timeline cache set error: %v", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

// Invalidate drops the slot so the next read recomputes regardless of the
// remaining TTL.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Del(ctx, key).Err()
}
