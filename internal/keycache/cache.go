// Package keycache caches normalized metric keys by the xxHash64 of their raw
// fully-qualified form.
//
// Metric names repeat heavily across serialization calls, so the serializer looks the
// raw (prefix, name) pair up here before running the normalizer. Entries keep the raw
// pair next to the normalized key; a hash match with a different raw pair is a
// collision and is treated as a miss.
package keycache

import (
	"sync"

	"github.com/arloliu/metricline/internal/hash"
)

type entry struct {
	prefix string
	name   string
	key    string
}

// Cache is a bounded, concurrency-safe map from raw metric key to normalized key.
//
// A nil *Cache is valid and never hits, which is how the serializer disables caching.
type Cache struct {
	mu         sync.RWMutex
	entries    map[uint64]entry
	capacity   int
	collisions uint64
}

// New creates a cache holding at most capacity entries. It returns nil when capacity
// is not positive.
func New(capacity int) *Cache {
	if capacity <= 0 {
		return nil
	}

	return &Cache{
		entries:  make(map[uint64]entry, min(capacity, 1024)),
		capacity: capacity,
	}
}

// Get returns the normalized key cached for prefix and name.
func (c *Cache) Get(prefix, name string) (string, bool) {
	if c == nil {
		return "", false
	}

	id := hash.MetricKeyID(prefix, name)

	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok || e.prefix != prefix || e.name != name {
		return "", false
	}

	return e.key, true
}

// Put stores the normalized key for prefix and name.
//
// The first pair stored under a hash keeps the slot: a different pair hashing to the
// same value is counted as a collision and not stored. When the cache is full it is
// cleared before the new entry is added.
func (c *Cache) Put(prefix, name, key string) {
	if c == nil {
		return
	}

	c.put(hash.MetricKeyID(prefix, name), prefix, name, key)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Collisions returns how many Put calls were rejected because of a hash collision.
func (c *Cache) Collisions() uint64 {
	if c == nil {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.collisions
}

func (c *Cache) put(id uint64, prefix, name, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[id]; ok {
		if existing.prefix != prefix || existing.name != name {
			c.collisions++
		}

		return
	}

	if len(c.entries) >= c.capacity {
		clear(c.entries)
	}
	c.entries[id] = entry{prefix: prefix, name: name, key: key}
}
