package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/gameinventory/internal/logger"
	"github.com/osse101/gameinventory/internal/metrics"
)

// GetOrLoad is the single cache-aside read path: check the cache, fall back
// to the loader on miss, then populate the cache best-effort.
//
// Cache failures are the one place errors are swallowed rather than
// surfaced. A corrupt or unreachable cache degrades to a loader call; the
// loader's result is always authoritative.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	log := logger.FromContext(ctx)

	raw, err := c.Get(ctx, key)
	if err == nil {
		var cached T
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			metrics.CacheHits.WithLabelValues(metricKey(key)).Inc()
			return cached, nil
		}
		// Deserialize failure: treat as a miss and repair the entry below
		log.Warn("Failed to decode cached value, falling back to store", "key", key)
	} else if !errors.Is(err, ErrMiss) {
		log.Warn("Cache read failed, falling back to store", "key", key, "error", err)
	}
	metrics.CacheMisses.WithLabelValues(metricKey(key)).Inc()

	loaded, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if encoded, err := json.Marshal(loaded); err != nil {
		log.Warn("Failed to encode value for cache", "key", key, "error", err)
	} else if err := c.Set(ctx, key, string(encoded), ttl); err != nil {
		log.Warn("Cache write failed", "key", key, "error", err)
	}

	return loaded, nil
}

// metricKey strips a trailing "_<id>" suffix so per-entity keys share one
// metric label and cardinality stays bounded
func metricKey(key string) string {
	i := strings.LastIndexByte(key, '_')
	if i < 0 {
		return key
	}
	if _, err := strconv.Atoi(key[i+1:]); err != nil {
		return key
	}
	return key[:i]
}

// Evict removes a key, logging failures instead of propagating them.
// Mutating operations call this before touching the store so a concurrent
// reader can never observe a value staler than the pending write.
func Evict(ctx context.Context, c Cache, key string) {
	if err := c.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Warn("Cache eviction failed", "key", key, "error", err)
	}
}
