// Package cache provides a small in-memory TTL cache for autocomplete
// suggestion lists, keeping repeat keystrokes off the upstream endpoint.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// entry holds a cached suggestion list with its creation timestamp.
type entry struct {
	suggestions []string
	createdAt   time.Time
}

// Cache is a fixed-capacity in-memory cache for suggestion lists.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache holding at most maxEntries lists, each valid for
// ttl. A background goroutine evicts expired entries every 5 minutes.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}

	go c.cleanupLoop()
	return c
}

// Key generates a cache key from the query keyword.
func Key(keyword string) string {
	h := sha256.Sum256([]byte(keyword))
	return hex.EncodeToString(h[:])
}

// Get retrieves a cached suggestion list if it exists and has not expired.
// Returns the list and whether it was a cache hit.
func (c *Cache) Get(key string) ([]string, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return nil, false
	}
	return e.suggestions, true
}

// Set stores a suggestion list. If the cache is at capacity, a random
// entry is evicted to make room.
func (c *Cache) Set(key string, suggestions []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict one random entry if at capacity (map iteration is random in Go).
	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		suggestions: suggestions,
		createdAt:   time.Now(),
	}
}

// cleanupLoop evicts expired entries every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
