package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/cache"
	"github.com/iliyamo/property-booking/internal/config"
	"github.com/iliyamo/property-booking/internal/model"
	"github.com/iliyamo/property-booking/internal/repository"
)

// RecommendService answers category subtree queries.  Results are
// memoized in a TTL cache; nothing invalidates entries on writes, so
// callers tolerate up to one TTL window of staleness.  Cache failures
// degrade to recomputation, never to request failure.
type RecommendService struct {
	store  repository.Store
	kv     cache.KV // nil disables caching
	cfg    config.SubtreeCacheConfig
	logger *zap.Logger
}

// NewRecommendService constructs a RecommendService.  Passing a nil KV
// or a disabled config turns caching off.
func NewRecommendService(store repository.Store, kv cache.KV, cfg config.SubtreeCacheConfig, logger *zap.Logger) *RecommendService {
	if !cfg.Enabled {
		kv = nil
	}
	return &RecommendService{store: store, kv: kv, cfg: cfg, logger: logger}
}

// SubtreePropertyIDs returns the ids of all available properties tagged
// with the root category or any of its descendants.  A missing root
// yields an empty set, not an error.  On a cache hit the traversal and
// the property query are skipped entirely; concurrent misses may
// recompute the same key, which is harmless since the computation is
// idempotent.
func (s *RecommendService) SubtreePropertyIDs(ctx context.Context, rootCategoryID uint64) ([]uint64, error) {
	key := fmt.Sprintf("%s:%d", s.cfg.Prefix, rootCategoryID)
	if s.kv != nil {
		data, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			s.logger.Warn("subtree cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			var ids []uint64
			if err := json.Unmarshal(data, &ids); err == nil {
				return ids, nil
			}
		}
	}

	exists, err := s.store.CategoryExists(ctx, rootCategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []uint64{}, nil
	}

	categoryIDs, err := s.collectSubtree(ctx, rootCategoryID)
	if err != nil {
		return nil, err
	}
	// Availability predicate: the is_available flag.  Listings in any
	// lifecycle state drop out of recommendations the moment a booking
	// claims them.
	ids, err := s.store.PropertyIDsByCategories(ctx, categoryIDs, true)
	if err != nil {
		return nil, err
	}

	if s.kv != nil {
		data, err := json.Marshal(ids)
		if err == nil {
			if err := s.kv.Set(ctx, key, data, s.cfg.TTL); err != nil {
				s.logger.Warn("subtree cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return ids, nil
}

// collectSubtree walks the parent->children relation iteratively from
// the root and returns every category id reached.  The visited set
// bounds the walk even if the tree data turns out to contain a cycle.
func (s *RecommendService) collectSubtree(ctx context.Context, rootID uint64) ([]uint64, error) {
	stack := []uint64{rootID}
	visited := make(map[uint64]struct{})
	ids := make([]uint64, 0, 8)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		ids = append(ids, id)
		children, err := s.store.ChildCategoryIDs(ctx, id)
		if err != nil {
			return nil, err
		}
		stack = append(stack, children...)
	}
	return ids, nil
}

// Recommended resolves the subtree property ids for a category and
// loads the full records.  A zero category id is a caller error, not an
// empty result.
func (s *RecommendService) Recommended(ctx context.Context, categoryID uint64) ([]model.Property, error) {
	if categoryID == 0 {
		return nil, ErrMissingCategory
	}
	ids, err := s.SubtreePropertyIDs(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Property{}, nil
	}
	return s.store.PropertiesByIDs(ctx, ids)
}
