package projection

import (
	"slices"
	"sync"
)

type cacheKey struct {
	filter string
	tag    string
}

// Cache is a bounded in-memory store of projections. When full, the oldest
// inserted key is evicted.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey][]Entry
	order   []cacheKey
	size    int
}

// NewCache creates a cache holding up to size projections.
func NewCache(size int) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{
		entries: make(map[cacheKey][]Entry, size),
		order:   make([]cacheKey, 0, size),
		size:    size,
	}
}

// Get returns a copy of the cached projection for filter and tag.
func (c *Cache) Get(filter, tag string) ([]Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, ok := c.entries[cacheKey{filter, tag}]
	if !ok {
		return nil, false
	}
	return cloneEntries(entries), true
}

// Set stores a copy of entries for filter and tag.
func (c *Cache) Set(filter, tag string, entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{filter, tag}
	if _, ok := c.entries[key]; !ok {
		if len(c.order) >= c.size {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cloneEntries(entries)
}

// cloneEntries copies entries and their calling codes. Translations stay
// shared.
func cloneEntries(entries []Entry) []Entry {
	out := slices.Clone(entries)
	for i := range out {
		out[i].CallingCodes = slices.Clone(out[i].CallingCodes)
	}
	return out
}

// Clear removes all cache entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[cacheKey][]Entry, c.size)
	c.order = c.order[:0]
}

// Size returns the number of cached projections.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
