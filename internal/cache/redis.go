package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV implements KV on a Redis client.  Expiry is delegated to
// Redis' own TTL handling.
type RedisKV struct {
	rdb *redis.Client
}

// NewRedisKV returns a RedisKV bound to the given client.
func NewRedisKV(rdb *redis.Client) *RedisKV { return &RedisKV{rdb: rdb} }

func (c *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}
