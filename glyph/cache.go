package glyph

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/coverage"
)

// Key uniquely identifies a cached glyph mask.
type Key struct {
	// FontID distinguishes fonts sharing one cache.
	FontID uint64

	// GID is the glyph index within the font.
	GID ID

	// PPEM is the render size in 26.6 fixed point, so fractional sizes
	// get distinct entries.
	PPEM fixed.Int26_6
}

// CacheConfig holds configuration for a Cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached masks before the
	// least recently used entries are evicted.
	// Default: 1024
	MaxEntries int
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{MaxEntries: 1024}
}

// numShards is the number of cache shards for reduced lock contention.
const numShards = 16

// Cache is a thread-safe LRU cache for glyph masks, sharded to reduce
// lock contention when several renderers share it.
//
// Cache is safe for concurrent use. Cached masks are shared: treat them
// as immutable.
type Cache struct {
	shards [numShards]*cacheShard
	stats  CacheStats
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Hits       atomic.Uint64
	Misses     atomic.Uint64
	Evictions  atomic.Uint64
	Insertions atomic.Uint64
}

// cacheShard is a single shard: a map plus an LRU doubly-linked list.
type cacheShard struct {
	mu         sync.Mutex
	entries    map[Key]*cacheEntry
	head, tail *cacheEntry // head is most recently used
	maxEntries int
}

type cacheEntry struct {
	key        Key
	mask       *Mask
	prev, next *cacheEntry
}

// NewCache creates a mask cache with the default configuration.
func NewCache() *Cache {
	return NewCacheWithConfig(DefaultCacheConfig())
}

// NewCacheWithConfig creates a mask cache with the given configuration.
func NewCacheWithConfig(config CacheConfig) *Cache {
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultCacheConfig().MaxEntries
	}

	c := &Cache{}
	entriesPerShard := (config.MaxEntries + numShards - 1) / numShards
	for i := range c.shards {
		c.shards[i] = &cacheShard{
			entries:    make(map[Key]*cacheEntry, entriesPerShard),
			maxEntries: entriesPerShard,
		}
	}
	return c
}

// Get returns the cached mask for key, if present, and marks it most
// recently used.
func (c *Cache) Get(key Key) (*Mask, bool) {
	s := c.shardFor(key)

	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		s.moveToFront(e)
	}
	s.mu.Unlock()

	if !ok {
		c.stats.Misses.Add(1)
		return nil, false
	}
	c.stats.Hits.Add(1)
	return e.mask, true
}

// Put inserts a mask, evicting the least recently used entry of its
// shard if the shard is full. Inserting an existing key replaces the
// mask.
func (c *Cache) Put(key Key, mask *Mask) {
	s := c.shardFor(key)

	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		e.mask = mask
		s.moveToFront(e)
		s.mu.Unlock()
		return
	}

	e := &cacheEntry{key: key, mask: mask}
	s.entries[key] = e
	s.pushFront(e)

	var evicted *cacheEntry
	if len(s.entries) > s.maxEntries {
		evicted = s.tail
		s.remove(evicted)
		delete(s.entries, evicted.key)
	}
	s.mu.Unlock()

	c.stats.Insertions.Add(1)
	if evicted != nil {
		c.stats.Evictions.Add(1)
		coverage.Logger().Debug("glyph mask evicted",
			slog.Uint64("fontID", evicted.key.FontID),
			slog.Int("gid", int(evicted.key.GID)),
			slog.String("ppem", evicted.key.PPEM.String()))
	}
}

// Len returns the total number of cached masks.
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Clear removes all entries. Statistics are kept.
func (c *Cache) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		clear(s.entries)
		s.head, s.tail = nil, nil
		s.mu.Unlock()
	}
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() (hits, misses, evictions, insertions uint64) {
	return c.stats.Hits.Load(),
		c.stats.Misses.Load(),
		c.stats.Evictions.Load(),
		c.stats.Insertions.Load()
}

// shardFor maps a key to its shard by mixing the key fields.
func (c *Cache) shardFor(key Key) *cacheShard {
	h := key.FontID
	h ^= uint64(key.GID) << 32
	h ^= uint64(uint32(key.PPEM)) << 11
	h ^= h >> 29
	return c.shards[h%numShards]
}

// The list helpers assume the shard lock is held.

func (s *cacheShard) pushFront(e *cacheEntry) {
	e.prev = nil
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *cacheShard) remove(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (s *cacheShard) moveToFront(e *cacheEntry) {
	if s.head == e {
		return
	}
	s.remove(e)
	s.pushFront(e)
}
