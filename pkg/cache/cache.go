package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is a simple in-memory cache with per-key TTL. It backs the
// dashboard stats endpoint when no Redis instance is configured.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
}

// New creates a new cache
func New() *Cache {
	return &Cache{items: map[string]entry{}}
}

// Set stores a value in the cache with a given TTL
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Get retrieves a value from the cache if it hasn't expired
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.items[key]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Invalidate removes all items matching a prefix
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}
