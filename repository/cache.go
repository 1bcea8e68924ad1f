package repository

import (
	"container/list"
	"sync"
	"time"

	"github.com/viant/blastradius/summary"
)

// Cache is a capacity- and age-bounded cache of parsed summaries, safe for
// concurrent readers. Least recently used entries are evicted when capacity
// is reached; entries older than the TTL are dropped on access.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List // front = most recent
}

type cacheEntry struct {
	key     string
	value   *summary.StructuralSummary
	created time.Time
}

// NewCache creates a cache holding up to capacity entries for at most ttl.
// A non-positive capacity falls back to 100; a non-positive ttl disables age
// eviction.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 100
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns a cached summary if present and not expired. Entry fields are
// copied while the lock is held; Put mutates them in place for existing keys.
func (c *Cache) Get(key string) (*summary.StructuralSummary, bool) {
	c.mu.RLock()
	element, ok := c.items[key]
	var value *summary.StructuralSummary
	var created time.Time
	if ok {
		entry := element.Value.(*cacheEntry)
		value = entry.value
		created = entry.created
	}
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(created) > c.ttl {
		c.mu.Lock()
		if current, still := c.items[key]; still && current == element {
			// the entry may have been refreshed since the read lock dropped
			if time.Since(current.Value.(*cacheEntry).created) > c.ttl {
				c.order.Remove(element)
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
		return nil, false
	}
	c.mu.Lock()
	c.order.MoveToFront(element)
	c.mu.Unlock()
	return value, true
}

// Put stores a summary, evicting the least recently used entry when full.
func (c *Cache) Put(key string, value *summary.StructuralSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if element, ok := c.items[key]; ok {
		element.Value.(*cacheEntry).value = value
		element.Value.(*cacheEntry).created = time.Now()
		c.order.MoveToFront(element)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
	c.items[key] = c.order.PushFront(&cacheEntry{key: key, value: value, created: time.Now()})
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}
