package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/slotparse/internal/slot"
)

// MemoryCache is an expiring in-process cache
type MemoryCache struct {
	cache *gocache.Cache
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates a memory cache. A zero ttl means entries never expire.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns a copy of the cached slice so callers cannot alter the entry
func (c *MemoryCache) Get(key string) ([]slot.Value, bool) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	values := val.([]slot.Value)
	return append([]slot.Value(nil), values...), true
}

// Set stores values under key; ttl 0 uses the cache default
func (c *MemoryCache) Set(key string, values []slot.Value, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, append([]slot.Value(nil), values...), ttl)
}

func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

func (c *MemoryCache) Clear() {
	c.cache.Flush()
}

func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
