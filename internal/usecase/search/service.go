// Package search provides the catalog full-text search use case. Results
// are kept in a small in-process cache so repeated interactive queries do
// not reach storage; imports purge the cache wholesale.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kuckmal/internal/common/pagination"
	"kuckmal/internal/domain/entity"
	"kuckmal/internal/observability/metrics"
	"kuckmal/internal/repository"
	searchutil "kuckmal/internal/pkg/search"
)

// Cache dimensions. Fifty distinct windows cover a browsing session; five
// minutes keeps results no staler than the shortest Redis TTL.
const (
	DefaultCacheSize = 50
	DefaultCacheTTL  = 300 * time.Second
)

// cacheCategory labels this cache's hits and misses in the metrics,
// distinct from the Redis layer's "search" category.
const cacheCategory = "search_memory"

// ErrEmptyQuery indicates a search request without any query words.
var ErrEmptyQuery = fmt.Errorf("search query must not be empty")

// Params describes one search request before normalization.
type Params struct {
	Query   string
	Channel string // optional: exact channel match
	Theme   string // optional: exact theme match
	Limit   int
	Offset  int
}

// Result is one page of search matches plus the unpaginated total, the
// normalized query, and the clamped window that produced it.
type Result struct {
	Entries []*entity.MediaEntry
	Total   int64
	Query   string
	Window  pagination.Window
}

// Service provides the full-text search use case.
type Service struct {
	Repo       repository.MediaRepository
	Pagination pagination.Config
	cache      *resultCache
}

// NewService creates a search service with the default pagination
// configuration and result cache.
func NewService(repo repository.MediaRepository) *Service {
	return &Service{
		Repo:       repo,
		Pagination: pagination.DefaultConfig(),
		cache:      newResultCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

// Search runs a word-order independent AND search over title, description,
// and theme. Returns ErrEmptyQuery when the query contains no words.
func (s *Service) Search(ctx context.Context, p Params) (*Result, error) {
	query := strings.TrimSpace(p.Query)
	words := searchutil.Words(query)
	if len(words) == 0 {
		return nil, ErrEmptyQuery
	}

	w := pagination.Clamp(p.Limit, p.Offset, s.Pagination)
	key := cacheKey(query, p.Channel, p.Theme, w)

	if res, ok := s.cache.get(key); ok {
		metrics.RecordCacheRequest(cacheCategory, true)
		return res, nil
	}
	metrics.RecordCacheRequest(cacheCategory, false)

	entries, total, err := s.Repo.Search(ctx, repository.SearchQuery{
		Words:   words,
		Channel: p.Channel,
		Theme:   p.Theme,
		Limit:   w.Limit,
		Offset:  w.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	res := &Result{
		Entries: entries,
		Total:   total,
		Query:   query,
		Window:  w,
	}
	s.cache.set(key, res)
	return res, nil
}

// Purge drops every cached result. Sync runs call this after an import so
// searches never serve entries from the replaced list.
func (s *Service) Purge(_ context.Context) error {
	s.cache.clear()
	return nil
}

// CacheStats reports the result cache counters.
func (s *Service) CacheStats() CacheStats {
	return s.cache.statsSnapshot()
}

// cacheKey builds the canonical cache key for a normalized request.
func cacheKey(query, channel, theme string, w pagination.Window) string {
	return strings.Join([]string{
		query,
		channel,
		theme,
		strconv.Itoa(w.Limit),
		strconv.Itoa(w.Offset),
	}, "|")
}
