package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryKV implements KV with a plain map.  It serves tests (with an
// injected clock) and local runs without Redis.  Expired entries are
// dropped lazily on the next write of the same key.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryKV returns a MemoryKV using the wall clock.
func NewMemoryKV() *MemoryKV {
	return NewMemoryKVWithClock(time.Now)
}

// NewMemoryKVWithClock returns a MemoryKV that reads time from now.
// Tests use this to step past TTLs without sleeping.
func NewMemoryKVWithClock(now func() time.Time) *MemoryKV {
	return &MemoryKV{
		entries: make(map[string]memEntry),
		now:     now,
	}
}

func (c *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (c *MemoryKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	c.entries[key] = memEntry{value: v, expiresAt: c.now().Add(ttl)}
	return nil
}
