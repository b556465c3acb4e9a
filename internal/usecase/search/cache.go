package search

import (
	"sync"
	"time"
)

// CacheStats holds counters for the in-process result cache.
type CacheStats struct {
	Hits        int64
	Misses      int64
	Sets        int64
	Evictions   int64
	CurrentSize int
}

// cachedResult is one stored search result with its expiration and
// recency bookkeeping.
type cachedResult struct {
	result   *Result
	expires  time.Time
	lastUsed time.Time
}

// resultCache is a bounded TTL cache for search results. Repeated
// interactive searches are served from memory; anything older than the
// TTL or pushed out by the size bound falls back to storage.
type resultCache struct {
	mu      sync.Mutex
	entries map[string]*cachedResult
	max     int
	ttl     time.Duration
	stats   CacheStats
	now     func() time.Time
}

func newResultCache(max int, ttl time.Duration) *resultCache {
	return &resultCache{
		entries: make(map[string]*cachedResult),
		max:     max,
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached result for key, if present and fresh.
func (c *resultCache) get(key string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	now := c.now()
	if now.After(e.expires) {
		delete(c.entries, key)
		c.stats.Misses++
		return nil, false
	}

	e.lastUsed = now
	c.stats.Hits++
	return e.result, true
}

// set stores a result under key, evicting the least recently used entry
// when the cache is full.
func (c *resultCache) set(key string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		c.evictOldest()
	}

	c.entries[key] = &cachedResult{
		result:   result,
		expires:  now.Add(c.ttl),
		lastUsed: now,
	}
	c.stats.Sets++
}

// evictOldest removes the least recently used entry. Caller holds the lock.
func (c *resultCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range c.entries {
		if oldestKey == "" || e.lastUsed.Before(oldest) {
			oldestKey = key
			oldest = e.lastUsed
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.stats.Evictions++
	}
}

// clear removes all cached results.
func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cachedResult)
}

// statsSnapshot returns a copy of the counters with the current size.
func (c *resultCache) statsSnapshot() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.CurrentSize = len(c.entries)
	return stats
}
