package browse

import (
	"context"
	"fmt"

	"kuckmal/internal/common/pagination"
	"kuckmal/internal/domain/entity"
	"kuckmal/internal/repository"
)

// Service provides catalog browse and administration use cases.
// It handles business logic for catalog operations and delegates
// persistence to the repository.
type Service struct {
	Repo       repository.MediaRepository
	Pagination pagination.Config
}

// NewService creates a browse service with the default pagination
// configuration.
func NewService(repo repository.MediaRepository) *Service {
	return &Service{
		Repo:       repo,
		Pagination: pagination.DefaultConfig(),
	}
}

// ThemesResult is a page of theme names plus the unpaginated total and
// the clamped window that produced it.
type ThemesResult struct {
	Themes []string
	Total  int64
	Window pagination.Window
}

// EntriesResult is a page of entries plus the unpaginated total and the
// clamped window that produced it.
type EntriesResult struct {
	Entries []*entity.MediaEntry
	Total   int64
	Window  pagination.Window
}

// BatchResult reports the outcome of a bulk insert: how many entries were
// written and how many were dropped as invalid or duplicate.
type BatchResult struct {
	Received int
	Inserted int64
	Skipped  int64
}

// Channels retrieves all distinct channel names, sorted.
// Returns an error if the repository operation fails.
func (s *Service) Channels(ctx context.Context) ([]string, error) {
	channels, err := s.Repo.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return channels, nil
}

// Themes retrieves theme names matching the filter, sorted, with the
// unpaginated total. The filter's limit and offset are clamped before use.
func (s *Service) Themes(ctx context.Context, f repository.ThemeFilter) (*ThemesResult, error) {
	w := pagination.Clamp(f.Limit, f.Offset, s.Pagination)
	f.Limit, f.Offset = w.Limit, w.Offset

	themes, total, err := s.Repo.Themes(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return &ThemesResult{Themes: themes, Total: total, Window: w}, nil
}

// Titles retrieves entries matching the filter, newest first, with the
// unpaginated total. The filter's limit and offset are clamped before use.
func (s *Service) Titles(ctx context.Context, f repository.TitleFilter) (*EntriesResult, error) {
	w := pagination.Clamp(f.Limit, f.Offset, s.Pagination)
	f.Limit, f.Offset = w.Limit, w.Offset

	entries, total, err := s.Repo.Titles(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	return &EntriesResult{Entries: entries, Total: total, Window: w}, nil
}

// Entry retrieves a single entry by its full (channel, theme, title) key.
// Returns a ValidationError when any key part is empty.
// Returns ErrEntryNotFound when no entry matches.
func (s *Service) Entry(ctx context.Context, channel, theme, title string) (*entity.MediaEntry, error) {
	if channel == "" {
		return nil, &entity.ValidationError{Field: "channel", Message: "is required"}
	}
	if theme == "" {
		return nil, &entity.ValidationError{Field: "theme", Message: "is required"}
	}
	if title == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}

	entry, err := s.Repo.Entry(ctx, channel, theme, title)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// EntryByTheme retrieves the first entry matching (theme, title).
// Returns a ValidationError when either part is empty.
// Returns ErrEntryNotFound when no entry matches.
func (s *Service) EntryByTheme(ctx context.Context, theme, title string) (*entity.MediaEntry, error) {
	if theme == "" {
		return nil, &entity.ValidationError{Field: "theme", Message: "is required"}
	}
	if title == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}

	entry, err := s.Repo.EntryByTheme(ctx, theme, title)
	if err != nil {
		return nil, fmt.Errorf("get entry by theme: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// EntryByTitle retrieves the first entry matching the title alone.
// Returns a ValidationError when the title is empty.
// Returns ErrEntryNotFound when no entry matches.
func (s *Service) EntryByTitle(ctx context.Context, title string) (*entity.MediaEntry, error) {
	if title == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}

	entry, err := s.Repo.EntryByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("get entry by title: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// Recent retrieves entries broadcast at or after minTimestamp, newest
// first. A zero minTimestamp matches the whole catalog; the limit is
// clamped like any other listing.
func (s *Service) Recent(ctx context.Context, minTimestamp int64, limit int) ([]*entity.MediaEntry, error) {
	w := pagination.Clamp(limit, 0, s.Pagination)

	entries, err := s.Repo.Recent(ctx, minTimestamp, w.Limit)
	if err != nil {
		return nil, fmt.Errorf("list recent entries: %w", err)
	}
	return entries, nil
}

// DiffSince retrieves entries broadcast strictly after since, oldest
// first, for incremental client synchronization. The limit defaults to
// the maximum so one call drains as much of the backlog as allowed.
// Returns ErrInvalidSince unless since is positive.
func (s *Service) DiffSince(ctx context.Context, since int64, limit int) ([]*entity.MediaEntry, error) {
	if since <= 0 {
		return nil, ErrInvalidSince
	}
	if limit <= 0 {
		limit = s.Pagination.MaxLimit
	}
	w := pagination.Clamp(limit, 0, s.Pagination)

	entries, err := s.Repo.DiffSince(ctx, since, w.Limit)
	if err != nil {
		return nil, fmt.Errorf("list diff entries: %w", err)
	}
	return entries, nil
}

// Count retrieves the total number of stored entries.
// Returns an error if the repository operation fails.
func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// Stats retrieves aggregated catalog statistics.
// Returns an error if the repository operation fails.
func (s *Service) Stats(ctx context.Context) (*entity.CatalogStats, error) {
	stats, err := s.Repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

// Broadcasters returns the static broadcaster table for channel pickers.
func (s *Service) Broadcasters() []entity.Broadcaster {
	return entity.Broadcasters()
}

// CreateBatch validates and inserts a batch of entries. Invalid entries
// are skipped, valid ones are written with conflict-ignore semantics so
// existing rows stay untouched. The result reports how many entries were
// actually inserted and how many were dropped as invalid or duplicate.
// Returns a ValidationError when the batch is empty.
func (s *Service) CreateBatch(ctx context.Context, entries []*entity.MediaEntry) (*BatchResult, error) {
	if len(entries) == 0 {
		return nil, &entity.ValidationError{Field: "entries", Message: "must not be empty"}
	}

	valid := make([]*entity.MediaEntry, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.Validate() != nil {
			continue
		}
		valid = append(valid, e)
	}

	var written int64
	if len(valid) > 0 {
		var err error
		written, err = s.Repo.UpsertBatch(ctx, valid, repository.OnConflictIgnore)
		if err != nil {
			return nil, fmt.Errorf("insert entries: %w", err)
		}
	}

	return &BatchResult{
		Received: len(entries),
		Inserted: written,
		Skipped:  int64(len(entries)) - written,
	}, nil
}

// DeleteAll removes every entry and reports how many were removed.
// Returns an error if the repository operation fails.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := s.Repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete entries: %w", err)
	}
	return deleted, nil
}

// DeleteByChannel removes all entries of one channel and reports how many
// were removed. Returns a ValidationError when the channel is empty.
func (s *Service) DeleteByChannel(ctx context.Context, channel string) (int64, error) {
	if channel == "" {
		return 0, &entity.ValidationError{Field: "channel", Message: "is required"}
	}

	deleted, err := s.Repo.DeleteByChannel(ctx, channel)
	if err != nil {
		return 0, fmt.Errorf("delete entries by channel: %w", err)
	}
	return deleted, nil
}
