package config

import (
	"os"
	"time"
)

// SubtreeCacheConfig defines settings for the category subtree cache.
// When Enabled is false or no Redis client is configured, the cache is
// skipped and every lookup recomputes the subtree.  TTL puts the only
// bound on staleness: there is no invalidation on category or property
// writes.  Prefix namespaces the keys inside Redis.
type SubtreeCacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadSubtreeCacheConfig reads environment variables to build a
// SubtreeCacheConfig.  Defaults are used when variables are not set.
func LoadSubtreeCacheConfig() SubtreeCacheConfig {
	return SubtreeCacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "5m")),
		Prefix:  getenv("CACHE_PREFIX", "category_subtree"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}
