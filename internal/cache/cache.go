// Package cache memoizes decoded report groups. Reports repeat the same
// groups constantly ("BR", "10SM", "FEW250"), so a small LRU in front of the
// parsers skips most regular-expression work.
package cache

import (
	"sync"

	"github.com/couchcryptid/metar-decoder/internal/domain"
	"github.com/couchcryptid/metar-decoder/internal/observability"
)

// CachedDecoder wraps a TokenDecoder with an in-memory LRU cache.
// Misses are cached too; errors are not.
type CachedDecoder struct {
	inner   domain.TokenDecoder
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedDecoder creates a cache decorator around a token decoder. A
// non-positive maxEntries disables caching. metrics may be nil.
func NewCachedDecoder(inner domain.TokenDecoder, maxEntries int, metrics *observability.Metrics) *CachedDecoder {
	c := &CachedDecoder{inner: inner, metrics: metrics}
	if maxEntries > 0 {
		c.cache = newLRUCache(maxEntries)
	}
	return c
}

func (c *CachedDecoder) DecodeToken(token string) ([]domain.DecodedToken, error) {
	if c.cache == nil {
		return c.inner.DecodeToken(token)
	}
	if decoded, ok := c.cache.get(token); ok {
		c.observe("hit")
		return decoded, nil
	}
	c.observe("miss")

	decoded, err := c.inner.DecodeToken(token)
	if err != nil {
		return nil, err
	}
	c.cache.put(token, decoded)
	return decoded, nil
}

// Len reports the number of cached groups.
func (c *CachedDecoder) Len() int {
	if c.cache == nil {
		return 0
	}
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	return len(c.cache.entries)
}

func (c *CachedDecoder) observe(result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.DecodeCache.WithLabelValues(result).Inc()
}

// lruCache is a simple thread-safe LRU cache keyed by report group.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []domain.DecodedToken
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.DecodedToken, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []domain.DecodedToken) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.unlink(c.tail)
}
