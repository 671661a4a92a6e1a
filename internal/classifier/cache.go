package classifier

import (
	"sync"

	"card-advisor/internal/domain"
)

const (
	MinCacheSize     = 100
	MaxCacheSize     = 1000
	DefaultCacheSize = 500
)

type cacheKey struct {
	text string
	mcc  int
}

// Cache is a bounded FIFO of classification results. Safe for concurrent use.
// A nil *Cache is valid and caches nothing.
type Cache struct {
	mu      sync.Mutex
	size    int
	entries map[cacheKey]domain.ClassificationResult
	order   []cacheKey
}

// NewCache clamps size into [MinCacheSize, MaxCacheSize].
func NewCache(size int) *Cache {
	if size < MinCacheSize {
		size = MinCacheSize
	}
	if size > MaxCacheSize {
		size = MaxCacheSize
	}
	return &Cache{
		size:    size,
		entries: make(map[cacheKey]domain.ClassificationResult, size),
		order:   make([]cacheKey, 0, size),
	}
}

func (c *Cache) get(k cacheKey) (domain.ClassificationResult, bool) {
	if c == nil {
		return domain.ClassificationResult{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[k]
	return r, ok
}

func (c *Cache) put(k cacheKey, r domain.ClassificationResult) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[k]; exists {
		c.entries[k] = r
		return
	}
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[k] = r
	c.order = append(c.order, k)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Size returns the capacity.
func (c *Cache) Size() int {
	if c == nil {
		return 0
	}
	return c.size
}
