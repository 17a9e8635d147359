// Package cache provides the TTL key-value layer that backs derived
// query results such as the category subtree property sets.  Values are
// opaque byte slices; callers handle their own encoding.
package cache

import (
	"context"
	"time"
)

// KV is a key-value store with per-entry expiry.  Get reports a miss
// with ok=false rather than an error so callers can treat infrastructure
// failures and plain misses differently.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
