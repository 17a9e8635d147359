package config

import (
	"strconv"
	"time"
)

// RateLimitConfig defines settings for the fixed-window request limiter.
// Limit is the number of requests allowed per Window for one client key.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig.  Defaults are used when variables are not set.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   60,
		Window:  parseDur(getenv("RATE_LIMIT_WINDOW", "1m")),
		Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if n, err := strconv.Atoi(getenv("RATE_LIMIT_LIMIT", "60")); err == nil && n > 0 {
		cfg.Limit = n
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}
