package config

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the Redis client backing the subtree cache and
// the request rate limiter.  The address resolves from REDIS_HOST and
// REDIS_PORT, falling back to REDIS_ADDR, then localhost:6379.
// REDIS_PASSWORD, REDIS_DB and REDIS_TLS are optional.  A failed ping
// returns nil instead of an error: both consumers treat Redis as
// optional, degrading to recomputation and pass-through respectively.
func NewRedisClient() *redis.Client {
	addr := getenv("REDIS_ADDR", "localhost:6379")
	if host := os.Getenv("REDIS_HOST"); host != "" {
		addr = host + ":" + getenv("REDIS_PORT", "6379")
	}

	db := 0
	if n, err := strconv.Atoi(getenv("REDIS_DB", "0")); err == nil {
		db = n
	}

	opts := &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}
	if v := os.Getenv("REDIS_TLS"); v == "true" || v == "1" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
