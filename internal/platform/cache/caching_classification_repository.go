// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/feature/catalog/usecase"
)

// DefaultNamespace prefixes every key this package writes.
const DefaultNamespace = "topbrands"

// CachingClassificationRepository decorates a ClassificationRepository with Redis caching.
// Only List results are cached; writes invalidate every cached list of the same kind.
type CachingClassificationRepository struct {
	inner     usecase.ClassificationRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	recorder  Recorder
}

// Recorder observes cache hits and misses.
type Recorder interface {
	RecordCache(name string, hit bool)
}

var _ usecase.ClassificationRepository = (*CachingClassificationRepository)(nil)

// NewCachingClassificationRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, DefaultNamespace is used.
// A nil rdb disables caching.
func NewCachingClassificationRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ClassificationRepository, namespace string) *CachingClassificationRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingClassificationRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// WithRecorder reports every List lookup to r.
func (c *CachingClassificationRepository) WithRecorder(r Recorder) *CachingClassificationRepository {
	c.recorder = r
	return c
}

func (c *CachingClassificationRepository) record(hit bool) {
	if c.recorder != nil {
		c.recorder.RecordCache("classifications", hit)
	}
}

// List returns classifications of kind, checking the cache first.
func (c *CachingClassificationRepository) List(ctx context.Context, kind entity.Kind, activeOnly bool) ([]entity.Classification, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, kind, activeOnly)
	}

	key := c.cacheKey(kind, activeOnly)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Classification
		if err := json.Unmarshal(b, &out); err == nil {
			c.record(true)
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	c.record(false)
	out, err := c.inner.List(ctx, kind, activeOnly)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByID is not cached.
func (c *CachingClassificationRepository) FindByID(ctx context.Context, kind entity.Kind, id uint) (*entity.Classification, error) {
	return c.inner.FindByID(ctx, kind, id)
}

// Create stores cl and invalidates the lists of its kind.
func (c *CachingClassificationRepository) Create(ctx context.Context, cl *entity.Classification) error {
	if err := c.inner.Create(ctx, cl); err != nil {
		return err
	}
	c.invalidate(ctx, cl.Kind)
	return nil
}

// Update saves cl and invalidates the lists of its kind.
func (c *CachingClassificationRepository) Update(ctx context.Context, cl *entity.Classification) error {
	if err := c.inner.Update(ctx, cl); err != nil {
		return err
	}
	c.invalidate(ctx, cl.Kind)
	return nil
}

// Delete removes the classification and invalidates the lists of kind.
func (c *CachingClassificationRepository) Delete(ctx context.Context, kind entity.Kind, id uint) error {
	if err := c.inner.Delete(ctx, kind, id); err != nil {
		return err
	}
	c.invalidate(ctx, kind)
	return nil
}

func (c *CachingClassificationRepository) invalidate(ctx context.Context, kind entity.Kind) {
	if c.rdb == nil {
		return
	}
	// Best effort: a stale list expires with the TTL anyway.
	if _, err := DeleteByPattern(ctx, c.rdb, c.kindPrefix(kind)+"*"); err != nil {
		slog.Warn("classification cache invalidation failed", "kind", kind, "error", err)
	}
}

// cacheKey generates a cache key for a specific list query.
func (c *CachingClassificationRepository) cacheKey(kind entity.Kind, activeOnly bool) string {
	scope := "all"
	if activeOnly {
		scope = "active"
	}
	return c.kindPrefix(kind) + scope
}

// kindPrefix generates a prefix for invalidating every list of kind.
func (c *CachingClassificationRepository) kindPrefix(kind entity.Kind) string {
	return fmt.Sprintf("%s:classifications:%s:", c.namespace, safe(string(kind)))
}

// DeleteByPattern deletes all keys matching pattern using SCAN and returns how many were removed.
func DeleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) (int64, error) {
	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, cur, err := rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			n, err := rdb.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += n
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return removed, nil
}

// ClearAll deletes every key under namespace.
func ClearAll(ctx context.Context, rdb *redis.Client, namespace string) (int64, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return DeleteByPattern(ctx, rdb, namespace+":*")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
