// Package cache provides a generic, thread-safe LRU cache. The document
// loader keeps parsed plays in it so each document is parsed once.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a generic LRU cache interface.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache.
	Get(key K) (V, bool)

	// Put stores a value in the cache.
	Put(key K, value V)

	// Remove removes a value from the cache.
	Remove(key K)

	// Clear removes all entries from the cache.
	Clear()

	// Keys returns the cached keys, most recently used first.
	Keys() []K

	// Len returns the number of entries in the cache.
	Len() int

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// Config contains cache configuration options.
type Config[K comparable, V any] struct {
	// MaxSize is the maximum number of entries (0 = unlimited).
	MaxSize int

	// TTL is the time-to-live for entries (0 = no expiration).
	TTL time.Duration

	// OnEvict is called when an entry is evicted or removed.
	OnEvict func(key K, value V)
}

// DefaultMaxSize is the entry limit used by DefaultConfig.
const DefaultMaxSize = 16

// DefaultConfig returns a default cache configuration: a handful of
// documents, never expiring.
func DefaultConfig[K comparable, V any]() Config[K, V] {
	return Config[K, V]{MaxSize: DefaultMaxSize}
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// lruCache is a thread-safe LRU cache implementation.
type lruCache[K comparable, V any] struct {
	mu        sync.Mutex
	config    Config[K, V]
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// NewLRUCache creates a new LRU cache with the given configuration.
func NewLRUCache[K comparable, V any](config Config[K, V]) Cache[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}

	return &lruCache[K, V]{
		config:    config,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
	}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	ent, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return zero, false
	}

	e := ent.Value.(*entry[K, V])
	if c.expired(e) {
		c.removeElement(ent)
		c.stats.Misses++
		return zero, false
	}

	c.evictList.MoveToFront(ent)
	c.stats.Hits++
	return e.value, true
}

func (c *lruCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(ent)
		e := ent.Value.(*entry[K, V])
		e.value = value
		e.expiresAt = c.deadline()
		return
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: c.deadline()}
	c.entries[key] = c.evictList.PushFront(e)

	if c.config.MaxSize > 0 && c.evictList.Len() > c.config.MaxSize {
		if oldest := c.evictList.Back(); oldest != nil {
			c.removeElement(oldest)
			c.stats.Evictions++
		}
	}
}

func (c *lruCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.removeElement(ent)
	}
}

func (c *lruCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

func (c *lruCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, c.evictList.Len())
	for ent := c.evictList.Front(); ent != nil; ent = ent.Next() {
		keys = append(keys, ent.Value.(*entry[K, V]).key)
	}
	return keys
}

func (c *lruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *lruCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.config.MaxSize
	return s
}

func (c *lruCache[K, V]) deadline() time.Time {
	if c.config.TTL <= 0 {
		return time.Time{}
	}
	return time.Now().Add(c.config.TTL)
}

func (c *lruCache[K, V]) expired(e *entry[K, V]) bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// removeElement must be called with c.mu held.
func (c *lruCache[K, V]) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	e := ent.Value.(*entry[K, V])
	delete(c.entries, e.key)

	if c.config.OnEvict != nil {
		c.config.OnEvict(e.key, e.value)
	}
}
