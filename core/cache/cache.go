// Package cache provides a thread-safe LRU cache with optional per-entry
// expiry, used to keep parsed chapters and songs in memory between lookups.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// Config contains cache configuration options.
type Config struct {
	// MaxSize is the maximum number of entries (0 = unlimited).
	MaxSize int

	// TTL is the time-to-live for entries (0 = no expiration).
	TTL time.Duration
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxSize: 256,
		TTL:     10 * time.Minute,
	}
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// LRU is a least-recently-used cache. The zero value is not usable; call New.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	config    Config
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
	now       func() time.Time
}

// New creates an LRU cache with the given configuration.
func New[K comparable, V any](config Config) *LRU[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}
	return &LRU[K, V]{
		config:    config,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
		now:       time.Now,
	}
}

// Get retrieves a value and marks it most recently used. Expired entries
// are dropped and count as misses.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	ent, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return zero, false
	}

	e := ent.Value.(*entry[K, V])
	if c.config.TTL > 0 && !c.now().Before(e.expiresAt) {
		c.removeElement(ent)
		c.stats.Misses++
		return zero, false
	}

	c.evictList.MoveToFront(ent)
	c.stats.Hits++
	return e.value, true
}

// Put stores a value, evicting the least recently used entry when full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.config.TTL > 0 {
		expires = c.now().Add(c.config.TTL)
	}

	if ent, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(ent)
		e := ent.Value.(*entry[K, V])
		e.value = value
		e.expiresAt = expires
		return
	}

	ent := c.evictList.PushFront(&entry[K, V]{key: key, value: value, expiresAt: expires})
	c.entries[key] = ent

	if c.config.MaxSize > 0 && c.evictList.Len() > c.config.MaxSize {
		if oldest := c.evictList.Back(); oldest != nil {
			c.removeElement(oldest)
			c.stats.Evictions++
		}
	}
}

// Remove removes a value from the cache.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.removeElement(ent)
	}
}

// Clear removes all entries. Statistics are kept.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries, including expired ones not yet dropped.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.config.MaxSize
	return s
}

func (c *LRU[K, V]) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	delete(c.entries, ent.Value.(*entry[K, V]).key)
}
