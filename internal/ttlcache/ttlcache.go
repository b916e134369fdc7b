// Package ttlcache is a small typed wrapper over go-cache used for listing caches.
package ttlcache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/platform9/pcdmanager/internal/observability"
)

// Cache stores values of type T for a fixed TTL.
type Cache[T any] struct {
	name string
	c    *gocache.Cache
}

// New returns a cache whose entries expire after ttl. A non-positive ttl disables caching.
func New[T any](name string, ttl time.Duration) *Cache[T] {
	if ttl <= 0 {
		return &Cache[T]{name: name}
	}
	return &Cache[T]{name: name, c: gocache.New(ttl, 2*ttl)}
}

// Get returns the cached value for key.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	if c.c == nil {
		return zero, false
	}
	v, ok := c.c.Get(key)
	observability.ObserveCache(c.name, ok)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Set stores v under key with the default TTL.
func (c *Cache[T]) Set(key string, v T) {
	if c.c == nil {
		return
	}
	c.c.SetDefault(key, v)
}

// Delete drops key.
func (c *Cache[T]) Delete(key string) {
	if c.c == nil {
		return
	}
	c.c.Delete(key)
}

// GetOrLoad returns the cached value or calls load and caches its result.
// Errors are not cached.
func (c *Cache[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}
