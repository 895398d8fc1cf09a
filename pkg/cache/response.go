package cache

import (
	"log/slog"
)

// ResponseCache holds parsed responses keyed by exact request path, query
// string included. Entries live as long as the cache and are never
// invalidated or evicted.
type ResponseCache struct {
	entries map[string]any
	hits    int
	misses  int
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{entries: make(map[string]any)}
}

// Lookup returns the cached response for path and whether it was present
func (c *ResponseCache) Lookup(path string) (any, bool) {
	value, ok := c.entries[path]
	if ok {
		c.hits++
		slog.Debug("cache hit", "path", path)
	} else {
		c.misses++
		slog.Debug("cache miss", "path", path)
	}
	return value, ok
}

// Store records the response for path, replacing any previous entry
func (c *ResponseCache) Store(path string, value any) {
	c.entries[path] = value
}

func (c *ResponseCache) Len() int {
	return len(c.entries)
}

// Stats returns the number of lookups that hit and missed
func (c *ResponseCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
