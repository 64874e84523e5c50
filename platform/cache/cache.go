// Package cache provides a Redis-backed read-through cache.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"autocenter_backend/platform/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Cache wraps a Redis client with JSON serialization and singleflight
// loading so concurrent misses for the same key hit the loader once.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	log    *logger.Logger
}

// New creates a cache from a Redis URL. Returns nil (a disabled cache) when
// the URL is empty; all methods tolerate a nil receiver.
func New(redisURL string, ttl time.Duration, log *logger.Logger) (*Cache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return &Cache{
		client: redis.NewClient(opt),
		ttl:    ttl,
		log:    log,
	}, nil
}

// NewWithClient creates a cache around an existing client. Used by tests
// with miniredis.
func NewWithClient(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get unmarshals the cached value for key into dest. Returns ErrMiss when
// absent or when the cache is disabled.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil || c.client == nil {
		return ErrMiss
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, dest)
}

// Set stores value under key with the configured TTL. Failures are logged
// and swallowed; a broken cache must never fail a request.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		if c.log != nil {
			c.log.Error("cache marshal failed", "key", key, "error", err.Error())
		}
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil && c.log != nil {
		c.log.Warn("cache set failed", "key", key, "error", err.Error())
	}
}

// Delete removes keys, typically after an admin write invalidates listings.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil && c.log != nil {
		c.log.Warn("cache delete failed", "error", err.Error())
	}
}

// GetOrLoad returns the cached value for key, or invokes load once (across
// concurrent callers) and caches the result.
func (c *Cache) GetOrLoad(ctx context.Context, key string, dest interface{}, load func(ctx context.Context) (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	} else if !errors.Is(err, ErrMiss) && c != nil && c.log != nil {
		c.log.Warn("cache get failed", "key", key, "error", err.Error())
	}

	value, err, _ := c.flight().Do(key, func() (interface{}, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return err
	}

	// Round-trip through JSON so dest gets populated the same way as a hit.
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *Cache) flight() *singleflight.Group {
	if c == nil {
		return &singleflight.Group{}
	}
	return &c.group
}
