// Package cache provides the optional Redis query-result cache.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache caches serialized search results. Entries are keyed by query
// hash and index version; bumping the version after a rebuild retires all
// stale entries without explicit invalidation.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis at the given URL.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis connection failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves a cached value. Returns empty string if key not found.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set stores a value with TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// GetIndexVersion retrieves the current version of the index at indexPath.
func (c *RedisCache) GetIndexVersion(ctx context.Context, indexPath string) (int64, error) {
	val, err := c.client.Get(ctx, versionKey(indexPath)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

// IncrIndexVersion bumps the index version after a rebuild.
func (c *RedisCache) IncrIndexVersion(ctx context.Context, indexPath string) (int64, error) {
	return c.client.Incr(ctx, versionKey(indexPath)).Result()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// QueryCacheKey generates a cache key for a search query against one index
// snapshot.
func QueryCacheKey(indexPath, query string, k int, version int64) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%d", indexPath, query, k)))
	return fmt.Sprintf("repoqa:query:%x:%d", h[:8], version)
}

func versionKey(indexPath string) string {
	h := sha256.Sum256([]byte(indexPath))
	return fmt.Sprintf("repoqa:index:version:%x", h[:8])
}
