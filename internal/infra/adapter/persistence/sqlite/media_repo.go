package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"kuckmal/internal/domain/entity"
	"kuckmal/internal/pkg/search"
	"kuckmal/internal/repository"
)

// entryColumns is the canonical column list shared by every SELECT.
const entryColumns = `id, channel, theme, title, date, time, duration, size_mb, description, url, website, subtitle_url, small_url, hd_url, timestamp, geo, is_new`

// maxBatchRows bounds the rows per multi-row INSERT. 17 bind variables per
// row keeps 500 rows well below SQLite's variable ceiling.
const maxBatchRows = 500

// MediaRepo implements the MediaRepository interface using SQLite.
type MediaRepo struct {
	db *sql.DB
	qb *EntryQueryBuilder
}

// NewMediaRepo creates a new SQLite-backed media repository.
func NewMediaRepo(db *sql.DB) repository.MediaRepository {
	return &MediaRepo{db: db, qb: NewEntryQueryBuilder()}
}

// scanEntry reads one media_entries row in entryColumns order.
func scanEntry(s interface{ Scan(...interface{}) error }) (*entity.MediaEntry, error) {
	var e entity.MediaEntry
	err := s.Scan(&e.ID,
		&e.Channel, &e.Theme, &e.Title,
		&e.Date, &e.Time, &e.Duration,
		&e.SizeMB, &e.Description,
		&e.URL, &e.Website, &e.SubtitleURL,
		&e.URLSmall, &e.URLHD,
		&e.Timestamp, &e.Geo, &e.IsNew)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// collectEntries drains rows into a slice, preallocated for a typical page.
func collectEntries(rows *sql.Rows) ([]*entity.MediaEntry, error) {
	entries := make([]*entity.MediaEntry, 0, 100)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return entries, nil
}

// Channels retrieves all distinct channel names, sorted.
func (repo *MediaRepo) Channels(ctx context.Context) ([]string, error) {
	const query = `
SELECT DISTINCT channel
FROM media_entries
ORDER BY channel
`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("Channels: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	channels := make([]string, 0, 32)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("Channels: Scan: %w", err)
		}
		channels = append(channels, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Channels: rows.Err: %w", err)
	}
	return channels, nil
}

// Themes retrieves distinct theme names matching the filter along with the
// unpaginated total.
func (repo *MediaRepo) Themes(ctx context.Context, f repository.ThemeFilter) ([]string, int64, error) {
	where, args := repo.qb.BuildThemeWhere(f)

	countQuery := `SELECT COUNT(DISTINCT theme) FROM media_entries ` + where
	var total int64
	if err := repo.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("Themes: count: %w", err)
	}

	query := `SELECT DISTINCT theme FROM media_entries ` + where + `
ORDER BY theme
LIMIT ? OFFSET ?`
	rows, err := repo.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("Themes: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	themes := make([]string, 0, 100)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, 0, fmt.Errorf("Themes: Scan: %w", err)
		}
		themes = append(themes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("Themes: rows.Err: %w", err)
	}
	return themes, total, nil
}

// Titles retrieves entries matching the filter, newest first, along with
// the unpaginated total.
func (repo *MediaRepo) Titles(ctx context.Context, f repository.TitleFilter) ([]*entity.MediaEntry, int64, error) {
	where, args := repo.qb.BuildTitleWhere(f)

	countQuery := `SELECT COUNT(*) FROM media_entries ` + where
	var total int64
	if err := repo.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("Titles: count: %w", err)
	}

	query := `SELECT ` + entryColumns + ` FROM media_entries ` + where + `
ORDER BY timestamp DESC
LIMIT ? OFFSET ?`
	rows, err := repo.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("Titles: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("Titles: %w", err)
	}
	return entries, total, nil
}

// Entry retrieves the entry with the exact (channel, theme, title) key.
func (repo *MediaRepo) Entry(ctx context.Context, channel, theme, title string) (*entity.MediaEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM media_entries
WHERE channel = ? AND theme = ? AND title = ?
LIMIT 1`
	e, err := scanEntry(repo.db.QueryRowContext(ctx, query, channel, theme, title))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("Entry: QueryRowContext: %w", err)
	}
	return e, nil
}

// EntryByTheme retrieves the first entry matching (theme, title).
func (repo *MediaRepo) EntryByTheme(ctx context.Context, theme, title string) (*entity.MediaEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM media_entries
WHERE theme = ? AND title = ?
LIMIT 1`
	e, err := scanEntry(repo.db.QueryRowContext(ctx, query, theme, title))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("EntryByTheme: QueryRowContext: %w", err)
	}
	return e, nil
}

// EntryByTitle retrieves the first entry matching the title.
func (repo *MediaRepo) EntryByTitle(ctx context.Context, title string) (*entity.MediaEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM media_entries
WHERE title = ?
LIMIT 1`
	e, err := scanEntry(repo.db.QueryRowContext(ctx, query, title))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("EntryByTitle: QueryRowContext: %w", err)
	}
	return e, nil
}

// Search performs word-order independent AND matching over title,
// description, and theme, newest first, and reports the total.
func (repo *MediaRepo) Search(ctx context.Context, q repository.SearchQuery) ([]*entity.MediaEntry, int64, error) {
	if len(q.Words) == 0 {
		return []*entity.MediaEntry{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, search.DefaultSearchTimeout)
	defer cancel()

	where, args := repo.qb.BuildSearchWhere(q)

	countQuery := `SELECT COUNT(*) FROM media_entries ` + where
	var total int64
	if err := repo.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("Search: count: %w", err)
	}

	query := `SELECT ` + entryColumns + ` FROM media_entries ` + where + `
ORDER BY timestamp DESC
LIMIT ? OFFSET ?`
	rows, err := repo.db.QueryContext(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("Search: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("Search: %w", err)
	}
	return entries, total, nil
}

// Recent retrieves entries with timestamp >= minTimestamp, newest first.
func (repo *MediaRepo) Recent(ctx context.Context, minTimestamp int64, limit int) ([]*entity.MediaEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM media_entries
WHERE timestamp >= ?
ORDER BY timestamp DESC
LIMIT ?`
	rows, err := repo.db.QueryContext(ctx, query, minTimestamp, limit)
	if err != nil {
		return nil, fmt.Errorf("Recent: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("Recent: %w", err)
	}
	return entries, nil
}

// DiffSince retrieves entries with timestamp > since in ascending order for
// incremental client synchronization.
func (repo *MediaRepo) DiffSince(ctx context.Context, since int64, limit int) ([]*entity.MediaEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM media_entries
WHERE timestamp > ?
ORDER BY timestamp
LIMIT ?`
	rows, err := repo.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("DiffSince: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("DiffSince: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (repo *MediaRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: QueryRowContext: %w", err)
	}
	return count, nil
}

// Stats aggregates catalog statistics.
func (repo *MediaRepo) Stats(ctx context.Context) (*entity.CatalogStats, error) {
	const query = `
SELECT
	COUNT(*),
	COUNT(DISTINCT channel),
	COUNT(DISTINCT theme),
	COALESCE(MAX(timestamp), 0),
	COALESCE(SUM(CASE WHEN is_new THEN 1 ELSE 0 END), 0)
FROM media_entries
`
	var stats entity.CatalogStats
	err := repo.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalEntries, &stats.ChannelCount, &stats.ThemeCount,
		&stats.LatestTimestamp, &stats.NewEntries,
	)
	if err != nil {
		return nil, fmt.Errorf("Stats: QueryRowContext: %w", err)
	}
	return &stats, nil
}

// UpsertBatch writes entries using multi-row INSERT ... ON CONFLICT
// statements inside a single transaction. Entries beyond maxBatchRows are
// split into further statements within the same transaction.
func (repo *MediaRepo) UpsertBatch(ctx context.Context, entries []*entity.MediaEntry, mode repository.ConflictMode) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("UpsertBatch: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var written int64
	for start := 0; start < len(entries); start += maxBatchRows {
		end := min(start+maxBatchRows, len(entries))
		n, err := upsertChunk(ctx, tx, entries[start:end], mode)
		if err != nil {
			return 0, fmt.Errorf("UpsertBatch: %w", err)
		}
		written += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("UpsertBatch: Commit: %w", err)
	}
	return written, nil
}

// upsertChunk executes one multi-row statement for up to maxBatchRows rows.
func upsertChunk(ctx context.Context, tx *sql.Tx, entries []*entity.MediaEntry, mode repository.ConflictMode) (int64, error) {
	const row = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	placeholders := make([]string, len(entries))
	args := make([]interface{}, 0, len(entries)*16)
	for i, e := range entries {
		placeholders[i] = row
		args = append(args,
			e.Channel, e.Theme, e.Title,
			e.Date, e.Time, e.Duration,
			e.SizeMB, e.Description,
			e.URL, e.Website, e.SubtitleURL,
			e.URLSmall, e.URLHD,
			e.Timestamp, e.Geo, e.IsNew)
	}

	conflict := `ON CONFLICT(channel, theme, title) DO NOTHING`
	if mode == repository.OnConflictUpdate {
		conflict = `ON CONFLICT(channel, theme, title) DO UPDATE SET
	date = excluded.date,
	time = excluded.time,
	duration = excluded.duration,
	size_mb = excluded.size_mb,
	description = excluded.description,
	url = excluded.url,
	website = excluded.website,
	subtitle_url = excluded.subtitle_url,
	small_url = excluded.small_url,
	hd_url = excluded.hd_url,
	timestamp = excluded.timestamp,
	geo = excluded.geo,
	is_new = excluded.is_new`
	}

	query := `INSERT INTO media_entries
(channel, theme, title, date, time, duration, size_mb, description, url, website, subtitle_url, small_url, hd_url, timestamp, geo, is_new)
VALUES ` + strings.Join(placeholders, ", ") + `
` + conflict

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("RowsAffected: %w", err)
	}
	return n, nil
}

// DeleteAll removes every entry and reports how many were removed.
func (repo *MediaRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM media_entries`)
	if err != nil {
		return 0, fmt.Errorf("DeleteAll: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteAll: RowsAffected: %w", err)
	}
	return n, nil
}

// DeleteByChannel removes all entries of one channel.
func (repo *MediaRepo) DeleteByChannel(ctx context.Context, channel string) (int64, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM media_entries WHERE channel = ?`, channel)
	if err != nil {
		return 0, fmt.Errorf("DeleteByChannel: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByChannel: RowsAffected: %w", err)
	}
	return n, nil
}
