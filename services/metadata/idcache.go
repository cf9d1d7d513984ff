package metadata

import (
	"fmt"
	"sync"
)

// idCache memoizes canonical-ID lookups keyed by (kind, provider ID).
// Failed resolutions are cached as empty strings so a provider entry
// with no canonical ID is only resolved once per process lifetime.
type idCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func newIDCache() *idCache {
	return &idCache{entries: make(map[string]string)}
}

func cacheKey(kind string, id int) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

func (c *idCache) get(kind string, id int) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey(kind, id)]
	return v, ok
}

func (c *idCache) put(kind string, id int, canonical string) {
	c.mu.Lock()
	c.entries[cacheKey(kind, id)] = canonical
	c.mu.Unlock()
}
