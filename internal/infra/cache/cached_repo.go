package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"kuckmal/internal/domain/entity"
	"kuckmal/internal/observability/metrics"
	"kuckmal/internal/repository"
)

// keyPrefix versions every cache key so a schema change can abandon old
// entries by bumping the prefix instead of flushing Redis.
const keyPrefix = "kuckmal:v1:"

// Per-category TTLs. Channel names change only when a broadcaster joins
// the catalog; search results churn with every import.
const (
	ttlChannels = 6 * time.Hour
	ttlThemes   = 15 * time.Minute
	ttlTitles   = 10 * time.Minute
	ttlEntry    = 10 * time.Minute
	ttlSearch   = 5 * time.Minute
	ttlStats    = 60 * time.Second
)

// CachedMediaRepository wraps a MediaRepository with a Redis cache-aside
// layer. Reads consult Redis first and fall through on miss; writes
// invalidate the whole prefix. A failing Redis degrades every operation
// to pass-through.
type CachedMediaRepository struct {
	inner repository.MediaRepository
	cache *Redis
}

// NewCachedMediaRepository wraps inner with Redis caching.
func NewCachedMediaRepository(inner repository.MediaRepository, c *Redis) repository.MediaRepository {
	return &CachedMediaRepository{inner: inner, cache: c}
}

/* ─── cached read operations ─── */

func (c *CachedMediaRepository) Channels(ctx context.Context) ([]string, error) {
	const key = keyPrefix + "channels:all"
	if v, err := Get[[]string](ctx, c.cache, key); err == nil {
		metrics.RecordCacheRequest("channels", true)
		return v, nil
	}
	metrics.RecordCacheRequest("channels", false)
	channels, err := c.inner.Channels(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, channels, ttlChannels)
	return channels, nil
}

// listResult caches a (names, total) tuple.
type listResult struct {
	Names []string `json:"names"`
	Total int64    `json:"total"`
}

func (c *CachedMediaRepository) Themes(ctx context.Context, f repository.ThemeFilter) ([]string, int64, error) {
	key := keyPrefix + "themes:" + digest(f.Channel, f.MinTimestamp, f.Limit, f.Offset)
	if v, err := Get[listResult](ctx, c.cache, key); err == nil {
		metrics.RecordCacheRequest("themes", true)
		return v.Names, v.Total, nil
	}
	metrics.RecordCacheRequest("themes", false)
	themes, total, err := c.inner.Themes(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	c.set(ctx, key, listResult{Names: themes, Total: total}, ttlThemes)
	return themes, total, nil
}

// entryListResult caches an (entries, total) tuple.
type entryListResult struct {
	Entries []*entity.MediaEntry `json:"entries"`
	Total   int64                `json:"total"`
}

func (c *CachedMediaRepository) Titles(ctx context.Context, f repository.TitleFilter) ([]*entity.MediaEntry, int64, error) {
	key := keyPrefix + "titles:" + digest(f.Channel, f.Theme, f.MinTimestamp, f.Limit, f.Offset)
	if v, err := Get[entryListResult](ctx, c.cache, key); err == nil {
		metrics.RecordCacheRequest("titles", true)
		return v.Entries, v.Total, nil
	}
	metrics.RecordCacheRequest("titles", false)
	entries, total, err := c.inner.Titles(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	c.set(ctx, key, entryListResult{Entries: entries, Total: total}, ttlTitles)
	return entries, total, nil
}

func (c *CachedMediaRepository) Entry(ctx context.Context, channel, theme, title string) (*entity.MediaEntry, error) {
	key := keyPrefix + "entry:" + digest(channel, theme, title)
	if v, err := Get[*entity.MediaEntry](ctx, c.cache, key); err == nil && v != nil {
		metrics.RecordCacheRequest("entry", true)
		return v, nil
	}
	metrics.RecordCacheRequest("entry", false)
	e, err := c.inner.Entry(ctx, channel, theme, title)
	if err != nil || e == nil {
		return e, err
	}
	c.set(ctx, key, e, ttlEntry)
	return e, nil
}

func (c *CachedMediaRepository) EntryByTheme(ctx context.Context, theme, title string) (*entity.MediaEntry, error) {
	key := keyPrefix + "entry:" + digest("by-theme", theme, title)
	if v, err := Get[*entity.MediaEntry](ctx, c.cache, key); err == nil && v != nil {
		metrics.RecordCacheRequest("entry", true)
		return v, nil
	}
	metrics.RecordCacheRequest("entry", false)
	e, err := c.inner.EntryByTheme(ctx, theme, title)
	if err != nil || e == nil {
		return e, err
	}
	c.set(ctx, key, e, ttlEntry)
	return e, nil
}

func (c *CachedMediaRepository) EntryByTitle(ctx context.Context, title string) (*entity.MediaEntry, error) {
	key := keyPrefix + "entry:" + digest("by-title", title)
	if v, err := Get[*entity.MediaEntry](ctx, c.cache, key); err == nil && v != nil {
		metrics.RecordCacheRequest("entry", true)
		return v, nil
	}
	metrics.RecordCacheRequest("entry", false)
	e, err := c.inner.EntryByTitle(ctx, title)
	if err != nil || e == nil {
		return e, err
	}
	c.set(ctx, key, e, ttlEntry)
	return e, nil
}

func (c *CachedMediaRepository) Search(ctx context.Context, q repository.SearchQuery) ([]*entity.MediaEntry, int64, error) {
	key := keyPrefix + "search:" + digest(strings.Join(q.Words, " "), q.Channel, q.Theme, q.Limit, q.Offset)
	if v, err := Get[entryListResult](ctx, c.cache, key); err == nil {
		metrics.RecordCacheRequest("search", true)
		return v.Entries, v.Total, nil
	}
	metrics.RecordCacheRequest("search", false)
	entries, total, err := c.inner.Search(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	c.set(ctx, key, entryListResult{Entries: entries, Total: total}, ttlSearch)
	return entries, total, nil
}

func (c *CachedMediaRepository) Count(ctx context.Context) (int64, error) {
	const key = keyPrefix + "stats:count"
	if v, err := Get[int64](ctx, c.cache, key); err == nil {
		metrics.RecordCacheRequest("stats", true)
		return v, nil
	}
	metrics.RecordCacheRequest("stats", false)
	count, err := c.inner.Count(ctx)
	if err != nil {
		return 0, err
	}
	c.set(ctx, key, count, ttlStats)
	return count, nil
}

func (c *CachedMediaRepository) Stats(ctx context.Context) (*entity.CatalogStats, error) {
	const key = keyPrefix + "stats:catalog"
	if v, err := Get[*entity.CatalogStats](ctx, c.cache, key); err == nil && v != nil {
		metrics.RecordCacheRequest("stats", true)
		return v, nil
	}
	metrics.RecordCacheRequest("stats", false)
	stats, err := c.inner.Stats(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, stats, ttlStats)
	return stats, nil
}

/* ─── uncached reads ─── */

// Recent and DiffSince feed client synchronization; serving them stale
// would defeat their purpose.

func (c *CachedMediaRepository) Recent(ctx context.Context, minTimestamp int64, limit int) ([]*entity.MediaEntry, error) {
	return c.inner.Recent(ctx, minTimestamp, limit)
}

func (c *CachedMediaRepository) DiffSince(ctx context.Context, since int64, limit int) ([]*entity.MediaEntry, error) {
	return c.inner.DiffSince(ctx, since, limit)
}

/* ─── write operations with cache invalidation ─── */

func (c *CachedMediaRepository) UpsertBatch(ctx context.Context, entries []*entity.MediaEntry, mode repository.ConflictMode) (int64, error) {
	written, err := c.inner.UpsertBatch(ctx, entries, mode)
	if err != nil {
		return 0, err
	}
	if written > 0 {
		c.invalidateAll(ctx)
	}
	return written, nil
}

func (c *CachedMediaRepository) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := c.inner.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	c.invalidateAll(ctx)
	return deleted, nil
}

func (c *CachedMediaRepository) DeleteByChannel(ctx context.Context, channel string) (int64, error) {
	deleted, err := c.inner.DeleteByChannel(ctx, channel)
	if err != nil {
		return 0, err
	}
	c.invalidateAll(ctx)
	return deleted, nil
}

/* ─── helpers ─── */

// set stores a value, logging instead of failing when Redis is down.
func (c *CachedMediaRepository) set(ctx context.Context, key string, v any, ttl time.Duration) {
	if err := Set(ctx, c.cache, key, v, ttl); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// invalidateAll drops every key under the version prefix. An import can
// change any listing, so partial invalidation is not worth the
// bookkeeping.
func (c *CachedMediaRepository) invalidateAll(ctx context.Context) {
	if err := DelPattern(ctx, c.cache, keyPrefix+"*"); err != nil && err != redis.Nil {
		slog.Warn("cache invalidation failed", "error", err)
	}
}

// PurgeCatalog drops every cached catalog result. Import pipelines call
// this once per completed run instead of invalidating per batch.
func PurgeCatalog(ctx context.Context, r *Redis) error {
	if err := DelPattern(ctx, r, keyPrefix+"*"); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

// digest produces a short deterministic hash of filter values so they
// can serve as cache key components.
func digest(parts ...any) string {
	raw := fmt.Sprintln(parts...)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}
