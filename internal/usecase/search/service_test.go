package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"kuckmal/internal/domain/entity"
	"kuckmal/internal/repository"
)

/* ───────── stub repository ───────── */

// searchRecorder implements only Search; the embedded interface covers the
// rest and panics if anything else is exercised.
type searchRecorder struct {
	repository.MediaRepository
	entries []*entity.MediaEntry
	total   int64
	err     error
	calls   int
	lastQ   repository.SearchQuery
}

func (r *searchRecorder) Search(_ context.Context, q repository.SearchQuery) ([]*entity.MediaEntry, int64, error) {
	r.calls++
	r.lastQ = q
	if r.err != nil {
		return nil, 0, r.err
	}
	return r.entries, r.total, nil
}

func sampleMatches() []*entity.MediaEntry {
	return []*entity.MediaEntry{
		{Channel: "ZDF", Theme: "Terra X", Title: "Eine kurze Geschichte über den Rhein", Timestamp: 1732476600},
		{Channel: "ARD", Theme: "Wissen", Title: "Der Rhein von oben", Timestamp: 1731800000},
	}
}

/* ───────── query validation ───────── */

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := NewService(&searchRecorder{})

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), Params{Query: q})
		if !errors.Is(err, ErrEmptyQuery) {
			t.Fatalf("query %q: want ErrEmptyQuery, got %v", q, err)
		}
	}
}

func TestSearchSplitsQueryIntoWords(t *testing.T) {
	repo := &searchRecorder{entries: sampleMatches(), total: 2}
	svc := NewService(repo)

	res, err := svc.Search(context.Background(), Params{Query: "  der   rhein "})
	if err != nil {
		t.Fatalf("Search err=%v", err)
	}

	wantWords := []string{"der", "rhein"}
	if len(repo.lastQ.Words) != 2 || repo.lastQ.Words[0] != wantWords[0] || repo.lastQ.Words[1] != wantWords[1] {
		t.Fatalf("words = %v, want %v", repo.lastQ.Words, wantWords)
	}
	if res.Query != "der   rhein" {
		t.Fatalf("normalized query = %q, want trimmed original", res.Query)
	}
	if res.Total != 2 || len(res.Entries) != 2 {
		t.Fatalf("result = total %d entries %d, want 2/2", res.Total, len(res.Entries))
	}
}

func TestSearchClampsWindow(t *testing.T) {
	repo := &searchRecorder{}
	svc := NewService(repo)

	res, err := svc.Search(context.Background(), Params{Query: "tatort", Limit: 999999, Offset: -4})
	if err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if res.Window.Limit != 10000 || res.Window.Offset != 0 {
		t.Fatalf("window = %+v, want limit 10000 offset 0", res.Window)
	}
	if repo.lastQ.Limit != 10000 || repo.lastQ.Offset != 0 {
		t.Fatalf("repo saw limit %d offset %d", repo.lastQ.Limit, repo.lastQ.Offset)
	}
}

/* ───────── caching ───────── */

func TestSearchServesRepeatFromCache(t *testing.T) {
	repo := &searchRecorder{entries: sampleMatches(), total: 2}
	svc := NewService(repo)

	p := Params{Query: "rhein", Channel: "ZDF"}
	if _, err := svc.Search(context.Background(), p); err != nil {
		t.Fatalf("first Search err=%v", err)
	}
	res, err := svc.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("second Search err=%v", err)
	}

	if repo.calls != 1 {
		t.Fatalf("repo calls = %d, want 1 (second request cached)", repo.calls)
	}
	if res.Total != 2 {
		t.Fatalf("cached total = %d, want 2", res.Total)
	}

	stats := svc.CacheStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Fatalf("stats = %+v, want 1 hit 1 miss 1 set", stats)
	}
}

func TestSearchDistinctWindowsMissCache(t *testing.T) {
	repo := &searchRecorder{entries: sampleMatches(), total: 2}
	svc := NewService(repo)

	if _, err := svc.Search(context.Background(), Params{Query: "rhein", Limit: 10}); err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if _, err := svc.Search(context.Background(), Params{Query: "rhein", Limit: 10, Offset: 10}); err != nil {
		t.Fatalf("Search err=%v", err)
	}

	if repo.calls != 2 {
		t.Fatalf("repo calls = %d, want 2 (different offsets)", repo.calls)
	}
}

func TestSearchExpiredEntryRefetches(t *testing.T) {
	repo := &searchRecorder{entries: sampleMatches(), total: 2}
	svc := NewService(repo)

	base := time.Now()
	svc.cache.now = func() time.Time { return base }

	if _, err := svc.Search(context.Background(), Params{Query: "rhein"}); err != nil {
		t.Fatalf("Search err=%v", err)
	}

	// Advance past the TTL; the cached result must not be served.
	svc.cache.now = func() time.Time { return base.Add(DefaultCacheTTL + time.Second) }

	if _, err := svc.Search(context.Background(), Params{Query: "rhein"}); err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("repo calls = %d, want 2 after expiry", repo.calls)
	}
}

func TestSearchEvictsLeastRecentlyUsed(t *testing.T) {
	repo := &searchRecorder{entries: sampleMatches(), total: 2}
	svc := NewService(repo)
	svc.cache = newResultCache(2, DefaultCacheTTL)

	queries := []string{"tatort", "rhein", "polizeiruf"}
	for _, q := range queries {
		if _, err := svc.Search(context.Background(), Params{Query: q}); err != nil {
			t.Fatalf("Search(%q) err=%v", q, err)
		}
	}

	// "tatort" was the oldest and must have been evicted.
	if _, err := svc.Search(context.Background(), Params{Query: "tatort"}); err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if repo.calls != 4 {
		t.Fatalf("repo calls = %d, want 4 (tatort evicted)", repo.calls)
	}

	stats := svc.CacheStats()
	if stats.Evictions != 2 || stats.CurrentSize != 2 {
		t.Fatalf("stats = %+v, want 2 evictions at size 2", stats)
	}
}

func TestPurgeClearsCache(t *testing.T) {
	repo := &searchRecorder{entries: sampleMatches(), total: 2}
	svc := NewService(repo)

	if _, err := svc.Search(context.Background(), Params{Query: "rhein"}); err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if err := svc.Purge(context.Background()); err != nil {
		t.Fatalf("Purge err=%v", err)
	}
	if _, err := svc.Search(context.Background(), Params{Query: "rhein"}); err != nil {
		t.Fatalf("Search err=%v", err)
	}

	if repo.calls != 2 {
		t.Fatalf("repo calls = %d, want 2 after purge", repo.calls)
	}
	if size := svc.CacheStats().CurrentSize; size != 1 {
		t.Fatalf("cache size after repopulation = %d, want 1", size)
	}
}

/* ───────── error handling ───────── */

func TestSearchRepoErrorNotCached(t *testing.T) {
	repo := &searchRecorder{err: errors.New("datenbank weg")}
	svc := NewService(repo)

	if _, err := svc.Search(context.Background(), Params{Query: "rhein"}); err == nil {
		t.Fatalf("want repo error, got nil")
	}

	// A failed lookup must not leave a poisoned cache entry behind.
	repo.err = nil
	repo.entries = sampleMatches()
	repo.total = 2

	res, err := svc.Search(context.Background(), Params{Query: "rhein"})
	if err != nil {
		t.Fatalf("Search after recovery err=%v", err)
	}
	if res.Total != 2 || repo.calls != 2 {
		t.Fatalf("recovery result total=%d calls=%d, want 2/2", res.Total, repo.calls)
	}
}
