package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/redis/go-redis/v9"
)

const versionKey = "cache:catalog:version"

// RedisCache stores catalog list responses. Every key embeds the current
// catalog version, so bumping the version drops all of them at once.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), ttl)
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Version returns the current catalog version. A missing counter is version 0.
func (c *RedisCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return version, nil
}

// Get decodes the value cached under version into dst. It reports false on a miss.
func (c *RedisCache) Get(ctx context.Context, version int64, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, cacheKey(version, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under version. Callers pass the version they read with,
// so a load that raced a write lands under a version nobody reads anymore.
func (c *RedisCache) Set(ctx context.Context, version int64, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(version, key), payload, c.ttl).Err()
}

// Invalidate bumps the catalog version; stale keys expire on their own.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func cacheKey(version int64, key string) string {
	return fmt.Sprintf("cache:catalog:v%d:%s", version, key)
}
