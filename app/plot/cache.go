package plot

import (
	"fmt"
	"math"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"graphplot/app/lang"
)

type cacheKey struct {
	id uint64
	x  float64
}

type cacheValue struct {
	y  float64
	ok bool
}

// CacheStats is a snapshot of the evaluation cache counters.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

func (s CacheStats) String() string {
	return fmt.Sprintf("hits=%d misses=%d size=%d", s.Hits, s.Misses, s.Len)
}

// Cache memoizes function values keyed by (function ID, x). Entries of a
// replaced function are never hit again and age out of the LRU.
type Cache struct {
	entries *lru.Cache[cacheKey, cacheValue]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewCache returns a cache holding at most size entries.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[cacheKey, cacheValue](size)
	if err != nil {
		return nil, fmt.Errorf("plot: evaluation cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Get returns fn(x), or false where fn is undefined or not valid.
// Undefined results are cached too.
func (c *Cache) Get(fn *lang.Function, x float64) (float64, bool) {
	if !fn.Valid() || math.IsNaN(x) {
		return 0, false
	}
	if x == 0 {
		x = 0 // one key for ±0
	}
	key := cacheKey{id: fn.ID, x: x}
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v.y, v.ok
	}
	c.misses.Add(1)
	y, ok := fn.Eval(x)
	c.entries.Add(key, cacheValue{y: y, ok: ok})
	return y, ok
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Len: c.entries.Len()}
}

// Purge drops every entry and resets the counters.
func (c *Cache) Purge() {
	c.entries.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}
