package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"applytrack/internal/pkg/logger"

	"github.com/google/uuid"
)

// QueryCache backs the read-through owner collection queries. Implementations
// may silently bypass; a miss is (false, nil). Incr must be atomic across
// processes and treat a missing key as 0.
type QueryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

func ContactsCacheKey(ownerID uuid.UUID) string {
	return "contacts:" + ownerID.String()
}

func ApplicationsCacheKey(ownerID uuid.UUID) string {
	return "applications:" + ownerID.String()
}

func ProfilePictureCacheKey(ownerID uuid.UUID) string {
	return "profile_picture:" + ownerID.String()
}

func generationKey(collection string) string {
	return collection + ":gen"
}

func entryKey(collection string, gen int64) string {
	return collection + ":v" + strconv.FormatInt(gen, 10)
}

// CollectionCache stores each owner collection under its current generation.
// Mutations bump the generation once the write is durable, so an entry filled
// by a load that overlapped the write lands under a generation no reader asks
// for again. A collection whose bump failed is read straight from storage until
// a later bump succeeds.
type CollectionCache struct {
	cache QueryCache
	ttl   time.Duration
	log   *logger.Logger

	mu    sync.Mutex
	dirty map[string]struct{}
}

func NewCollectionCache(cache QueryCache, ttl time.Duration, log *logger.Logger) *CollectionCache {
	return &CollectionCache{cache: cache, ttl: ttl, log: log, dirty: map[string]struct{}{}}
}

// snapshot resolves the entry key readers use for collection. ok is false when
// the cache must be bypassed for this read.
func (c *CollectionCache) snapshot(ctx context.Context, collection string) (string, bool) {
	if c == nil || c.cache == nil {
		return "", false
	}
	if c.isDirty(collection) {
		if _, err := c.cache.Incr(ctx, generationKey(collection)); err != nil {
			c.log.Warn("query cache still unsettled", "key", collection, "error", err)
			return "", false
		}
		c.setDirty(collection, false)
	}

	var gen int64
	if _, err := c.cache.GetJSON(ctx, generationKey(collection), &gen); err != nil {
		c.log.Warn("query cache generation read failed", "key", collection, "error", err)
		return "", false
	}
	return entryKey(collection, gen), true
}

func (c *CollectionCache) get(ctx context.Context, key string, out any) bool {
	hit, err := c.cache.GetJSON(ctx, key, out)
	if err != nil {
		c.log.Warn("query cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (c *CollectionCache) set(ctx context.Context, key string, value any) {
	if err := c.cache.SetJSON(ctx, key, value, c.ttl); err != nil {
		c.log.Warn("query cache write failed", "key", key, "error", err)
	}
}

// invalidate must run after the mutation is committed.
func (c *CollectionCache) invalidate(ctx context.Context, collections ...string) {
	if c == nil || c.cache == nil {
		return
	}
	for _, collection := range collections {
		if _, err := c.cache.Incr(ctx, generationKey(collection)); err != nil {
			c.log.Warn("query cache invalidation failed", "key", collection, "error", err)
			c.setDirty(collection, true)
		}
	}
}

func (c *CollectionCache) isDirty(collection string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.dirty[collection]
	return ok
}

func (c *CollectionCache) setDirty(collection string, dirty bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if dirty {
		c.dirty[collection] = struct{}{}
		return
	}
	delete(c.dirty, collection)
}
