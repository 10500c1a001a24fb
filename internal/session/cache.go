package session

import (
	"sort"
	"sync"
)

// Invalidator is anything the Cache can expire by key.
type Invalidator interface {
	Key() string
	Invalidate()
}

// Cache is a registry of queries addressable by key.
type Cache struct {
	mu      sync.RWMutex
	queries map[string]Invalidator
}

func NewCache() *Cache {
	return &Cache{queries: make(map[string]Invalidator)}
}

// Register adds q, replacing any query previously registered under its key.
func (c *Cache) Register(q Invalidator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries[q.Key()] = q
}

// Invalidate expires the query registered under key and reports whether one existed.
func (c *Cache) Invalidate(key string) bool {
	c.mu.RLock()
	q, ok := c.queries[key]
	c.mu.RUnlock()
	if ok {
		q.Invalidate()
	}
	return ok
}

// InvalidateAll expires every registered query.
func (c *Cache) InvalidateAll() {
	c.mu.RLock()
	qs := make([]Invalidator, 0, len(c.queries))
	for _, q := range c.queries {
		qs = append(qs, q)
	}
	c.mu.RUnlock()

	for _, q := range qs {
		q.Invalidate()
	}
}

// Keys lists registered keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.queries))
	for k := range c.queries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
