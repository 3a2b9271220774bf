package board

import (
	"sync"
	"time"
)

// Cache memoizes built tables for a bounded window so repeated dashboard
// views within the window do not re-query the tracker. Entries are
// immutable snapshots, so handing the same *Table to concurrent readers
// is safe.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	table   *Table
	expires time.Time
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached table for key if it has not expired.
func (c *Cache) Get(key string) (*Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.table, true
}

// Put stores a table under key with a fresh expiry.
func (c *Cache) Put(key string, table *Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{table: table, expires: time.Now().Add(c.ttl)}
}
