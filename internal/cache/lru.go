// Package cache holds the small read-through caches in front of the catalog
// endpoints. Entries go stale after a fixed TTL; when a cache outgrows its
// capacity the least recently used entry is evicted.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a fixed-capacity LRU with per-entry expiry. Construct with New;
// the zero value has no backing storage.
type Cache[T any] struct {
	mu      sync.Mutex
	cap     int
	ttl     time.Duration
	entries map[string]*list.Element
	order   *list.List // front is most recently used
}

type entry[T any] struct {
	key     string
	value   T
	staleAt time.Time
}

func New[T any](capacity int, ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		cap:     capacity,
		ttl:     ttl,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the cached value when it is present and fresh. A stale entry
// is dropped on the way out and reported as a miss.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.entries[key]
	if !ok {
		return zero, false
	}

	e := elem.Value.(*entry[T])
	if time.Now().After(e.staleAt) {
		c.drop(elem)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return e.value, true
}

// Set stores value under key with a fresh TTL, evicting the least recently
// used entry when the cache is full.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[T]{key: key, value: value, staleAt: time.Now().Add(c.ttl)}
	if elem, ok := c.entries[key]; ok {
		elem.Value = e
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(e)
	if c.order.Len() > c.cap {
		if oldest := c.order.Back(); oldest != nil {
			c.drop(oldest)
		}
	}
}

// Invalidate removes key, if cached. Catalog writes call this so the next
// read hits the store.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.drop(elem)
	}
}

// Purge drops every stale entry and reports how many went.
func (c *Cache[T]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if e := elem.Value.(*entry[T]); now.After(e.staleAt) {
			c.drop(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Len counts the cached entries, fresh or not.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[T]) drop(elem *list.Element) {
	delete(c.entries, elem.Value.(*entry[T]).key)
	c.order.Remove(elem)
}
