package repository

import (
	"context"

	"kuckmal/internal/domain/entity"
)

// ThemeFilter narrows theme listings.
type ThemeFilter struct {
	Channel      string // optional: exact channel match
	MinTimestamp int64  // optional: only themes with entries at or after this time
	Limit        int
	Offset       int
}

// TitleFilter narrows title (entry) listings.
type TitleFilter struct {
	Channel      string // optional: exact channel match
	Theme        string // optional: exact theme match
	MinTimestamp int64  // optional: only entries at or after this time
	Limit        int
	Offset       int
}

// SearchQuery describes a full-text catalog search. Words are matched
// independently of order: every word must occur in at least one of title,
// description, or theme.
type SearchQuery struct {
	Words   []string
	Channel string // optional: exact channel match
	Theme   string // optional: exact theme match
	Limit   int
	Offset  int
}

// ConflictMode selects what a bulk upsert does when the natural key
// (channel, theme, title) already exists.
type ConflictMode int

const (
	// OnConflictIgnore keeps the stored row. Full list imports use this:
	// the first occurrence in the document wins.
	OnConflictIgnore ConflictMode = iota
	// OnConflictUpdate replaces the stored row. Diff list imports use
	// this so corrected entries overwrite their predecessors.
	OnConflictUpdate
)

// MediaRepository is the storage port for the catalog. Implementations
// exist for SQLite and PostgreSQL with identical semantics.
type MediaRepository interface {
	// Channels returns all distinct channel names, sorted.
	Channels(ctx context.Context) ([]string, error)
	// Themes returns distinct theme names matching the filter, sorted,
	// along with the unpaginated total.
	Themes(ctx context.Context, f ThemeFilter) ([]string, int64, error)
	// Titles returns entries matching the filter, newest first, along
	// with the unpaginated total.
	Titles(ctx context.Context, f TitleFilter) ([]*entity.MediaEntry, int64, error)
	// Entry returns the entry with the exact (channel, theme, title) key,
	// or (nil, nil) when no such entry exists.
	Entry(ctx context.Context, channel, theme, title string) (*entity.MediaEntry, error)
	// EntryByTheme returns the first entry matching (theme, title), or
	// (nil, nil) when none matches.
	EntryByTheme(ctx context.Context, theme, title string) (*entity.MediaEntry, error)
	// EntryByTitle returns the first entry matching the title, or
	// (nil, nil) when none matches.
	EntryByTitle(ctx context.Context, title string) (*entity.MediaEntry, error)
	// Search performs word-order independent AND matching over title,
	// description, and theme, newest first, and reports the total.
	Search(ctx context.Context, q SearchQuery) ([]*entity.MediaEntry, int64, error)
	// Recent returns entries with timestamp >= minTimestamp, newest first.
	Recent(ctx context.Context, minTimestamp int64, limit int) ([]*entity.MediaEntry, error)
	// DiffSince returns entries with timestamp > since in ascending order,
	// for incremental client synchronization.
	DiffSince(ctx context.Context, since int64, limit int) ([]*entity.MediaEntry, error)
	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)
	// Stats aggregates catalog statistics in a single round trip per value.
	Stats(ctx context.Context) (*entity.CatalogStats, error)
	// UpsertBatch writes a batch of entries using multi-row statements
	// inside one transaction. The conflict mode decides whether existing
	// natural keys are kept or replaced. Returns the number of rows
	// actually written; in ignore mode the difference to len(entries) is
	// the number of duplicates skipped.
	UpsertBatch(ctx context.Context, entries []*entity.MediaEntry, mode ConflictMode) (int64, error)
	// DeleteAll removes every entry and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	// DeleteByChannel removes all entries of one channel.
	DeleteByChannel(ctx context.Context, channel string) (int64, error)
}
