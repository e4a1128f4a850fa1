package glyph

import (
	"sync"
	"testing"
)

func testKey(gid ID) Key {
	return Key{FontID: 1, GID: gid, PPEM: floatToFixed(16)}
}

func TestCachePutGet(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get(testKey(1)); ok {
		t.Error("empty cache reported a hit")
	}

	m := &Mask{Advance: 7}
	c.Put(testKey(1), m)

	got, ok := c.Get(testKey(1))
	if !ok {
		t.Fatal("inserted key not found")
	}
	if got != m {
		t.Error("cache returned a different mask pointer")
	}

	if _, ok := c.Get(Key{FontID: 2, GID: 1, PPEM: floatToFixed(16)}); ok {
		t.Error("hit for a different font id")
	}
	if _, ok := c.Get(Key{FontID: 1, GID: 1, PPEM: floatToFixed(17)}); ok {
		t.Error("hit for a different ppem")
	}
}

func TestCacheReplace(t *testing.T) {
	c := NewCache()
	c.Put(testKey(1), &Mask{Advance: 1})

	replacement := &Mask{Advance: 2}
	c.Put(testKey(1), replacement)

	if c.Len() != 1 {
		t.Errorf("Len = %d after replacing a key, want 1", c.Len())
	}
	got, _ := c.Get(testKey(1))
	if got != replacement {
		t.Error("replacement did not take effect")
	}
}

func TestCacheEviction(t *testing.T) {
	// MaxEntries 16 leaves each shard with a single slot, so every
	// shard collision evicts.
	c := NewCacheWithConfig(CacheConfig{MaxEntries: 16})

	const n = 200
	for i := 0; i < n; i++ {
		c.Put(testKey(ID(i)), &Mask{Advance: float32(i)})
	}

	if c.Len() > 16 {
		t.Errorf("Len = %d, want at most 16", c.Len())
	}
	_, _, evictions, insertions := c.Stats()
	if insertions != n {
		t.Errorf("insertions = %d, want %d", insertions, n)
	}
	if evictions != insertions-uint64(c.Len()) {
		t.Errorf("evictions = %d, want %d", evictions, insertions-uint64(c.Len()))
	}
}

func TestCacheLRUOrder(t *testing.T) {
	c := NewCacheWithConfig(CacheConfig{MaxEntries: numShards * 2})

	// Two keys landing in the same shard fill it; touching the first
	// makes the second the eviction victim.
	shard := c.shardFor(testKey(0))
	same := []ID{0}
	for gid := ID(1); len(same) < 3; gid++ {
		if c.shardFor(testKey(gid)) == shard {
			same = append(same, gid)
		}
	}

	c.Put(testKey(same[0]), &Mask{})
	c.Put(testKey(same[1]), &Mask{})
	if _, ok := c.Get(testKey(same[0])); !ok {
		t.Fatal("first key missing before eviction")
	}
	c.Put(testKey(same[2]), &Mask{})

	if _, ok := c.Get(testKey(same[0])); !ok {
		t.Error("recently used key was evicted")
	}
	if _, ok := c.Get(testKey(same[1])); ok {
		t.Error("least recently used key survived eviction")
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache()
	for i := 0; i < 50; i++ {
		c.Put(testKey(ID(i)), &Mask{})
	}
	c.Get(testKey(0))

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
	if _, ok := c.Get(testKey(0)); ok {
		t.Error("hit after Clear")
	}

	hits, _, _, insertions := c.Stats()
	if hits != 1 || insertions != 50 {
		t.Errorf("stats reset by Clear: hits=%d insertions=%d", hits, insertions)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCacheWithConfig(CacheConfig{MaxEntries: 64})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				gid := ID((g*31 + i) % 128)
				if m, ok := c.Get(testKey(gid)); ok {
					_ = m.Advance
					continue
				}
				c.Put(testKey(gid), &Mask{Advance: float32(gid)})
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len = %d, want at most 64", c.Len())
	}
	hits, misses, _, _ := c.Stats()
	if hits+misses != 8*500 {
		t.Errorf("hits+misses = %d, want %d", hits+misses, 8*500)
	}
}
