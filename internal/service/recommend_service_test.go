package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/cache"
	"github.com/iliyamo/property-booking/internal/config"
	"github.com/iliyamo/property-booking/internal/model"
	"github.com/iliyamo/property-booking/internal/repository"
)

func ptr(v uint64) *uint64 { return &v }

// seedTree builds category 1 with children 2 and 3, and 4 under 2.
// Properties: 100 in 1, 101 in 2, 102 in 4, 103 in 3 but unavailable,
// 104 in an unrelated category 9.
func seedTree(store *repository.MemoryStore) {
	store.PutCategory(model.Category{ID: 1, Name: "Homes", Slug: "homes"})
	store.PutCategory(model.Category{ID: 2, Name: "Apartments", Slug: "apartments", ParentID: ptr(1)})
	store.PutCategory(model.Category{ID: 3, Name: "Villas", Slug: "villas", ParentID: ptr(1)})
	store.PutCategory(model.Category{ID: 4, Name: "Studios", Slug: "studios", ParentID: ptr(2)})
	store.PutCategory(model.Category{ID: 9, Name: "Offices", Slug: "offices"})

	put := func(id, categoryID uint64, available bool) {
		store.PutProperty(model.Property{
			ID:          id,
			CategoryID:  categoryID,
			Status:      model.PropertyStatusActive,
			IsAvailable: available,
			PriceCents:  100000,
		})
	}
	put(100, 1, true)
	put(101, 2, true)
	put(102, 4, true)
	put(103, 3, false)
	put(104, 9, true)
}

func newRecommend(store *repository.MemoryStore, kv cache.KV, ttl time.Duration) *RecommendService {
	cfg := config.SubtreeCacheConfig{Enabled: kv != nil, TTL: ttl, Prefix: "category_subtree"}
	return NewRecommendService(store, kv, cfg, zap.NewNop())
}

func TestSubtreePropertyIDsWalksDescendants(t *testing.T) {
	store := repository.NewMemoryStore()
	seedTree(store)
	svc := newRecommend(store, nil, 0)

	ids, err := svc.SubtreePropertyIDs(context.Background(), 1)
	require.NoError(t, err)
	// 103 is unavailable and 104 sits outside the subtree.
	assert.ElementsMatch(t, []uint64{100, 101, 102}, ids)
}

func TestSubtreePropertyIDsMidTreeRoot(t *testing.T) {
	store := repository.NewMemoryStore()
	seedTree(store)
	svc := newRecommend(store, nil, 0)

	ids, err := svc.SubtreePropertyIDs(context.Background(), 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{101, 102}, ids)
}

func TestSubtreePropertyIDsMissingRoot(t *testing.T) {
	store := repository.NewMemoryStore()
	seedTree(store)
	svc := newRecommend(store, nil, 0)

	ids, err := svc.SubtreePropertyIDs(context.Background(), 77)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSubtreePropertyIDsSurvivesCycle(t *testing.T) {
	store := repository.NewMemoryStore()
	store.PutCategory(model.Category{ID: 1, Name: "A", Slug: "a", ParentID: ptr(2)})
	store.PutCategory(model.Category{ID: 2, Name: "B", Slug: "b", ParentID: ptr(1)})
	store.PutProperty(model.Property{ID: 100, CategoryID: 2, Status: model.PropertyStatusActive, IsAvailable: true})
	svc := newRecommend(store, nil, 0)

	ids, err := svc.SubtreePropertyIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{100}, ids)
}

func TestSubtreeCacheServesStaleUntilExpiry(t *testing.T) {
	store := repository.NewMemoryStore()
	seedTree(store)

	now := time.Now()
	kv := cache.NewMemoryKVWithClock(func() time.Time { return now })
	svc := newRecommend(store, kv, 5*time.Minute)

	ids, err := svc.SubtreePropertyIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{100, 101, 102}, ids)

	// A new listing appears; within the TTL the cached answer stands.
	store.PutProperty(model.Property{ID: 105, CategoryID: 3, Status: model.PropertyStatusActive, IsAvailable: true})

	ids, err = svc.SubtreePropertyIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{100, 101, 102}, ids)

	// Past the TTL the next read recomputes.
	now = now.Add(5*time.Minute + time.Second)

	ids, err = svc.SubtreePropertyIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{100, 101, 102, 105}, ids)
}

func TestSubtreeCacheKeysAreIndependent(t *testing.T) {
	store := repository.NewMemoryStore()
	seedTree(store)

	now := time.Now()
	kv := cache.NewMemoryKVWithClock(func() time.Time { return now })
	svc := newRecommend(store, kv, 5*time.Minute)

	root, err := svc.SubtreePropertyIDs(context.Background(), 1)
	require.NoError(t, err)
	sub, err := svc.SubtreePropertyIDs(context.Background(), 2)
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint64{100, 101, 102}, root)
	assert.ElementsMatch(t, []uint64{101, 102}, sub)
}

func TestRecommendedLoadsFullRecords(t *testing.T) {
	store := repository.NewMemoryStore()
	seedTree(store)
	svc := newRecommend(store, nil, 0)

	props, err := svc.Recommended(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, props, 2)
	got := []uint64{props[0].ID, props[1].ID}
	assert.ElementsMatch(t, []uint64{101, 102}, got)
}

func TestRecommendedRequiresCategory(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newRecommend(store, nil, 0)

	_, err := svc.Recommended(context.Background(), 0)
	assert.ErrorIs(t, err, ErrMissingCategory)
}
