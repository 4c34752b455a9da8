package cache

import (
	"context"
	"time"

	redisclient "github.com/storelab/storefront/common/redis"
)

// RedisCache is a Cache backed by a shared Redis instance. Entries survive
// process restarts and are visible to every replica of the service.
type RedisCache struct {
	client *redisclient.Client
	prefix string
}

// NewRedisCache creates a Redis-backed cache. All keys are namespaced with
// the given prefix so unrelated services can share one Redis database.
func NewRedisCache(client *redisclient.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.client.Get(ctx, c.prefix+key)
}

// Set stores a value in Redis with TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.SetWithExpiry(ctx, c.prefix+key, value, ttl)
}

// Delete removes a value from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Delete(ctx, c.prefix+key)
}

// Close is a no-op; the underlying client is owned by the container
func (c *RedisCache) Close() error {
	return nil
}
