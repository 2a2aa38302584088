// Package cache is the read-through cache with staleness fallback used by
// the profile, course-catalog and conversation read paths. One generic
// helper replaces the per-service copies: key + TTL + fetch function in,
// value out, with a degraded stale read when the backend is down.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Keys are "<kind>:<params>", e.g. "profile:42" or "courses:all".
func Key(kind string, params ...any) string {
	key := kind
	for _, p := range params {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

type Cache struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

// New builds a Cache over store. now is injectable for tests; nil means
// wall clock.
func New(store Store, log *zap.Logger, now func() time.Time) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{store: store, log: log, now: now}
}

// Invalidate drops key so the next read refetches. Used after owner writes.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.log.Warn("cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}

// Fetch serves a read through the cache:
//
//   - entry younger than ttl: return it without calling fetch
//   - otherwise call fetch; on success store and return the fresh value
//   - on fetch failure return the stale entry if one exists, however old
//   - no entry at all: the fetch error propagates
//
// Store writes are best-effort; a failed Put is logged and never fails the
// read. A corrupt or unparseable entry counts as a miss, not an error.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	entry, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		entry = nil
	}

	if entry != nil && c.now().Sub(entry.Timestamp) < ttl {
		if v, ok := decode[T](entry.Data); ok {
			return v, nil
		}
		// Corrupt entry: fall through to a real fetch.
		entry = nil
	}

	v, fetchErr := fetch(ctx)
	if fetchErr == nil {
		data, err := json.Marshal(v)
		if err != nil {
			c.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
			return v, nil
		}
		if err := c.store.Put(ctx, key, Entry{Timestamp: c.now(), Data: data}); err != nil {
			c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
		return v, nil
	}

	// Degraded path: any prior entry, fresh or stale, beats an error.
	stale, err := c.store.Get(ctx, key)
	if err == nil && stale != nil {
		if v, ok := decode[T](stale.Data); ok {
			c.log.Info("serving stale cache entry after fetch failure",
				zap.String("key", key), zap.Error(fetchErr))
			return v, nil
		}
	}

	return zero, fetchErr
}

func decode[T any](data json.RawMessage) (T, bool) {
	var v T
	if len(data) == 0 {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false
	}
	return v, true
}
