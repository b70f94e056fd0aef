package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"applytrack/internal/pkg/logger"
)

const queryKeyPrefix = "query:"

// ResultCache stores query results as JSON. Both MemoryCache and the Redis
// cache satisfy it.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheKey identifies the result of query run with vars.
func CacheKey(query string, vars any) string {
	b, err := json.Marshal(vars)
	if err != nil {
		b = []byte("null")
	}
	sum := sha256.Sum256(append([]byte(query+"\x00"), b...))
	return queryKeyPrefix + hex.EncodeToString(sum[:])
}

// Reconciler appends freshly created records to cached list results so the
// UI can show them before the refetch lands.
type Reconciler struct {
	cache ResultCache
	ttl   time.Duration
	log   *logger.Logger
}

func NewReconciler(cache ResultCache, ttl time.Duration, log *logger.Logger) *Reconciler {
	return &Reconciler{cache: cache, ttl: ttl, log: log}
}

// Reconcile appends record to the list cached under key. A missing or empty
// entry is left alone. Failures are logged and never returned.
func (r *Reconciler) Reconcile(ctx context.Context, key string, record any) {
	if r == nil || r.cache == nil {
		return
	}

	var cached []json.RawMessage
	found, err := r.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		r.log.Warn("reconcile: read cached result failed", "key", key, "error", err)
		return
	}
	if !found || len(cached) == 0 {
		return
	}

	item, err := json.Marshal(record)
	if err != nil {
		r.log.Warn("reconcile: marshal record failed", "key", key, "error", err)
		return
	}

	next := make([]json.RawMessage, 0, len(cached)+1)
	next = append(next, cached...)
	next = append(next, item)

	if err := r.cache.SetJSON(ctx, key, next, r.ttl); err != nil {
		r.log.Warn("reconcile: write cached result failed", "key", key, "error", err)
	}
}
