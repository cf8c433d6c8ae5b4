package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached reference dataset stays valid.
const DefaultTTL = 300 * time.Second

// Clock returns the current time. It enables deterministic tests.
type Clock func() time.Time

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is an in-memory key/value store with time-based invalidation.
// Entries are never swept; staleness is evaluated at read time and a
// stale entry is superseded by the next Set for its key.
type Cache struct {
	ttl     time.Duration
	now     Clock
	mu      sync.RWMutex
	entries map[string]entry
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// IsValid reports whether an entry exists for key and has not outlived
// the TTL.
func (c *Cache) IsValid(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	return c.now().Sub(e.storedAt) < c.ttl
}

// Get returns the stored value for key. An expired entry is
// indistinguishable from a missing one.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, unconditionally replacing any prior entry.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, storedAt: c.now()}
}
