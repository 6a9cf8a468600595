// Package cache is the read-through cache in front of the document store.
//
// Values are stored as JSON. A miss, an expired entry and a backend error
// all look the same to callers: Get returns false and the caller goes to
// the store.
package cache

import (
	"context"
	"time"

	"github.com/shashiranjanraj/shopapp/pkg/metrics"
)

// Store is a key/value cache.
type Store interface {
	// Get unmarshals the value under key into dest and reports a hit.
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Nop caches nothing. It is used when no cache backend is configured.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) bool                 { return false }
func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Nop) Del(context.Context, ...string) error                          { return nil }

// Key builds a namespaced cache key, e.g. Key("product", id) → "shop:product:<id>".
func Key(kind, id string) string {
	return "shop:" + kind + ":" + id
}

func observe(driver string, hit bool) bool {
	if hit {
		metrics.CacheHits.WithLabelValues(driver).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(driver).Inc()
	}
	return hit
}
