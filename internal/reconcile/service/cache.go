package service

import "sync"

// boundedCache — потокобезопасная map с потолком размера.
// Когда потолок достигнут, новые ключи просто не добавляются.
type boundedCache[K comparable, V any] struct {
	mu       sync.RWMutex
	items    map[K]V
	capacity int
}

func newBoundedCache[K comparable, V any](capacity int) *boundedCache[K, V] {
	return &boundedCache[K, V]{
		items:    make(map[K]V),
		capacity: capacity,
	}
}

func (c *boundedCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()
	return v, ok
}

// Put reports whether the value was stored. An existing entry is kept as is:
// every writer computes the same value for a key.
func (c *boundedCache[K, V]) Put(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; ok {
		return false
	}
	if len(c.items) >= c.capacity {
		return false
	}
	c.items[key] = value
	return true
}

func (c *boundedCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *boundedCache[K, V]) Clear() {
	c.mu.Lock()
	c.items = make(map[K]V)
	c.mu.Unlock()
}

// pairKey is order independent: lo <= hi.
type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// SimilarityCache maps an unordered pair of raw strings to their similarity.
type SimilarityCache struct {
	c *boundedCache[pairKey, float64]
}

func NewSimilarityCache(capacity int) *SimilarityCache {
	return &SimilarityCache{c: newBoundedCache[pairKey, float64](capacity)}
}

func (s *SimilarityCache) Get(a, b string) (float64, bool) { return s.c.Get(newPairKey(a, b)) }
func (s *SimilarityCache) Put(a, b string, v float64) bool { return s.c.Put(newPairKey(a, b), v) }
func (s *SimilarityCache) Len() int                        { return s.c.Len() }
func (s *SimilarityCache) Clear()                          { s.c.Clear() }
