// Package cache provides the bounded LRU cache memoizing recommendation
// results per (query, filters, page, size) key.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRU is a bounded least-recently-used cache safe for concurrent use.
// A Get refreshes the entry's recency; Set at capacity evicts the
// least-recently-used entry; Clear drops everything (the "data refreshed"
// signal). A single mutex guards the structure — the cache is the only
// shared mutable state in the pipeline.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type entry[V any] struct {
	key      string
	value    V
	storedAt time.Time
}

// NewLRU creates a cache holding at most capacity entries.
// Capacity below 1 is clamped to 1.
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[V]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached value and refreshes its recency.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry[V]).value, true
}

// Set stores a value, evicting the least-recently-used entry at capacity.
// Setting an existing key overwrites it and refreshes its recency.
func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.storedAt = time.Now()
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry[V]).key)
		}
	}

	c.entries[key] = c.order.PushFront(&entry[V]{
		key:      key,
		value:    value,
		storedAt: time.Now(),
	})
}

// Clear removes all entries.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element, c.capacity)
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
