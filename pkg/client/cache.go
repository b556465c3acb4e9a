package client

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultCacheSize bounds the number of resident responses. Signatures
// are per-parameter-set, so interactive browsing stays well below this.
const DefaultCacheSize = 128

// TTLs are the per-category cache lifetimes. The vocabulary of the
// catalog changes slowly (channels effectively never), listings change
// with every import, search results age fastest.
type TTLs struct {
	Channels time.Duration
	Themes   time.Duration
	Titles   time.Duration
	Entries  time.Duration
	Search   time.Duration
	Stats    time.Duration
}

// DefaultTTLs returns the lifetimes matching the server-side cache.
func DefaultTTLs() TTLs {
	return TTLs{
		Channels: 6 * time.Hour,
		Themes:   15 * time.Minute,
		Titles:   10 * time.Minute,
		Entries:  10 * time.Minute,
		Search:   5 * time.Minute,
		Stats:    time.Minute,
	}
}

// CacheStats are the counters of a CachedRepository.
type CacheStats struct {
	Hits      int64
	Misses    int64
	StaleHits int64
	Evictions int64
	Size      int
}

// CacheOption configures a CachedRepository.
type CacheOption func(*CachedRepository)

// WithCacheSize bounds the number of resident responses.
func WithCacheSize(n int) CacheOption {
	return func(c *CachedRepository) {
		if n > 0 {
			c.max = n
		}
	}
}

// WithTTLs overrides cache lifetimes. Zero fields keep their defaults.
func WithTTLs(t TTLs) CacheOption {
	return func(c *CachedRepository) {
		if t.Channels > 0 {
			c.ttls.Channels = t.Channels
		}
		if t.Themes > 0 {
			c.ttls.Themes = t.Themes
		}
		if t.Titles > 0 {
			c.ttls.Titles = t.Titles
		}
		if t.Entries > 0 {
			c.ttls.Entries = t.Entries
		}
		if t.Search > 0 {
			c.ttls.Search = t.Search
		}
		if t.Stats > 0 {
			c.ttls.Stats = t.Stats
		}
	}
}

// WithClock replaces the time source, for tests that age the cache
// without sleeping.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CachedRepository) { c.now = now }
}

// cacheEntry is one stored response. Entries stay resident after their
// TTL passes; an expired entry is the stale fallback when the network
// call behind a refresh fails.
type cacheEntry struct {
	value    any
	expires  time.Time
	lastUsed time.Time
}

// CachedRepository decorates a Repository with a bounded TTL cache
// keyed by request signature. Fresh hits answer without a network
// call; expired entries are refreshed, and when the refresh fails the
// expired value is served stamped SourceStale. Recent is deliberately
// never cached: its whole point is freshness.
type CachedRepository struct {
	next Repository

	mu      sync.Mutex
	entries map[string]*cacheEntry
	max     int
	ttls    TTLs
	now     func() time.Time
	stats   CacheStats
}

var _ Repository = (*CachedRepository)(nil)

// WithCache wraps next with the TTL cache decorator.
func WithCache(next Repository, opts ...CacheOption) *CachedRepository {
	c := &CachedRepository{
		next:    next,
		entries: make(map[string]*cacheEntry),
		max:     DefaultCacheSize,
		ttls:    DefaultTTLs(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stats returns a snapshot of the cache counters.
func (c *CachedRepository) Stats(ctx context.Context) (*Stats, error) {
	return cached(ctx, c, "stats", c.ttls.Stats, func() (*Stats, error) {
		return c.next.Stats(ctx)
	})
}

// CacheStats returns the cache's own counters, not catalog statistics.
func (c *CachedRepository) CacheStats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Size = len(c.entries)
	return s
}

// Purge drops every cached response, fresh and stale alike.
func (c *CachedRepository) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *CachedRepository) Channels(ctx context.Context) (*ChannelList, error) {
	return cached(ctx, c, "channels", c.ttls.Channels, func() (*ChannelList, error) {
		return c.next.Channels(ctx)
	})
}

func (c *CachedRepository) Themes(ctx context.Context, p ThemesParams) (*ThemeList, error) {
	key := fmt.Sprintf("themes|channel=%s|minTimestamp=%d|limit=%d|offset=%d",
		p.Channel, p.MinTimestamp, p.Limit, p.Offset)
	return cached(ctx, c, key, c.ttls.Themes, func() (*ThemeList, error) {
		return c.next.Themes(ctx, p)
	})
}

func (c *CachedRepository) Titles(ctx context.Context, p TitlesParams) (*EntryList, error) {
	key := fmt.Sprintf("titles|channel=%s|theme=%s|minTimestamp=%d|limit=%d|offset=%d",
		p.Channel, p.Theme, p.MinTimestamp, p.Limit, p.Offset)
	return cached(ctx, c, key, c.ttls.Titles, func() (*EntryList, error) {
		return c.next.Titles(ctx, p)
	})
}

func (c *CachedRepository) Entry(ctx context.Context, channel, theme, title string) (*EntryResult, error) {
	key := fmt.Sprintf("entry|channel=%s|theme=%s|title=%s", channel, theme, title)
	return cached(ctx, c, key, c.ttls.Entries, func() (*EntryResult, error) {
		return c.next.Entry(ctx, channel, theme, title)
	})
}

func (c *CachedRepository) EntryByTheme(ctx context.Context, theme, title string) (*EntryResult, error) {
	key := fmt.Sprintf("entry-by-theme|theme=%s|title=%s", theme, title)
	return cached(ctx, c, key, c.ttls.Entries, func() (*EntryResult, error) {
		return c.next.EntryByTheme(ctx, theme, title)
	})
}

func (c *CachedRepository) EntryByTitle(ctx context.Context, title string) (*EntryResult, error) {
	key := "entry-by-title|title=" + title
	return cached(ctx, c, key, c.ttls.Entries, func() (*EntryResult, error) {
		return c.next.EntryByTitle(ctx, title)
	})
}

func (c *CachedRepository) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	key := fmt.Sprintf("search|q=%s|channel=%s|theme=%s|limit=%d|offset=%d",
		p.Query, p.Channel, p.Theme, p.Limit, p.Offset)
	return cached(ctx, c, key, c.ttls.Search, func() (*SearchResult, error) {
		return c.next.Search(ctx, p)
	})
}

// Recent passes through uncached.
func (c *CachedRepository) Recent(ctx context.Context, minTimestamp int64, limit int) (*EntryList, error) {
	return c.next.Recent(ctx, minTimestamp, limit)
}

// cached is the lookup-fetch-fallback core shared by every operation.
// The PT constraint ties the result pointer to the Origin stamp without
// per-type duplication.
func cached[T any, PT interface {
	*T
	sourced
}](ctx context.Context, c *CachedRepository, key string, ttl time.Duration, fetch func() (PT, error)) (PT, error) {
	if v, ok := c.lookupFresh(key); ok {
		return stamp[T, PT](v, SourceCache), nil
	}

	res, err := fetch()
	if err != nil {
		if networkFailure(ctx, err) {
			if v, ok := c.lookupStale(key); ok {
				return stamp[T, PT](v, SourceStale), nil
			}
		}
		return nil, err
	}

	c.store(key, res, ttl)
	return res, nil
}

// stamp returns a shallow copy with the source set, so concurrent
// readers of the same cached value never write the same Origin.
func stamp[T any, PT interface {
	*T
	sourced
}](v any, s Source) PT {
	cp := *(v.(PT))
	p := PT(&cp)
	p.setSource(s)
	return p
}

// lookupFresh returns the value under key when present and unexpired.
// Expired entries count as misses but stay resident.
func (c *CachedRepository) lookupFresh(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	now := c.now()
	if now.After(e.expires) {
		c.stats.Misses++
		return nil, false
	}
	e.lastUsed = now
	c.stats.Hits++
	return e.value, true
}

// lookupStale returns the value under key regardless of expiry.
func (c *CachedRepository) lookupStale(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e.lastUsed = c.now()
	c.stats.StaleHits++
	return e.value, true
}

// store inserts or replaces the value under key, evicting the least
// recently used entry when the cache is full.
func (c *CachedRepository) store(key string, v any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		c.evictOldest()
	}
	c.entries[key] = &cacheEntry{
		value:    v,
		expires:  now.Add(ttl),
		lastUsed: now,
	}
}

// evictOldest removes the least recently used entry. Caller holds the
// lock; a linear scan over at most DefaultCacheSize entries is cheaper
// than maintaining a list.
func (c *CachedRepository) evictOldest() {
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
