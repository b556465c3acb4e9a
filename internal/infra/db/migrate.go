package db

import (
	"database/sql"
	"fmt"
)

// migration is one schema step. Statements run in order inside a single
// transaction; bestEffort statements may fail without aborting the step
// (extensions and engine-specific indexes).
type migration struct {
	version    int
	statements []string
	bestEffort []string
}

// migrationsFor returns the ordered schema steps for the given engine.
// Both engines produce the same logical schema: the media_entries table
// with its natural key and the lookup indexes the browse queries need.
func migrationsFor(engine Engine) []migration {
	switch engine {
	case EnginePostgres:
		return []migration{
			{
				version: 1,
				statements: []string{
					`CREATE TABLE IF NOT EXISTS media_entries (
    id           BIGSERIAL PRIMARY KEY,
    channel      TEXT NOT NULL,
    theme        TEXT NOT NULL,
    title        TEXT NOT NULL,
    date         TEXT NOT NULL DEFAULT '',
    time         TEXT NOT NULL DEFAULT '',
    duration     TEXT NOT NULL DEFAULT '',
    size_mb      INTEGER NOT NULL DEFAULT 0,
    description  TEXT NOT NULL DEFAULT '',
    url          TEXT NOT NULL DEFAULT '',
    website      TEXT NOT NULL DEFAULT '',
    subtitle_url TEXT NOT NULL DEFAULT '',
    small_url    TEXT NOT NULL DEFAULT '',
    hd_url       TEXT NOT NULL DEFAULT '',
    timestamp    BIGINT NOT NULL DEFAULT 0,
    geo          TEXT NOT NULL DEFAULT '',
    is_new       BOOLEAN NOT NULL DEFAULT FALSE,
    CONSTRAINT uq_media_entries_key UNIQUE (channel, theme, title)
)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_channel ON media_entries(channel)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_theme ON media_entries(theme)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_timestamp ON media_entries(timestamp DESC)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_channel_theme ON media_entries(channel, theme)`,
				},
				bestEffort: []string{
					// pg_trgm speeds up the ILIKE search; skipped without
					// superuser rights.
					`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_title_gin ON media_entries USING gin(title gin_trgm_ops)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_description_gin ON media_entries USING gin(description gin_trgm_ops)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_theme_gin ON media_entries USING gin(theme gin_trgm_ops)`,
				},
			},
		}
	default:
		return []migration{
			{
				version: 1,
				statements: []string{
					`CREATE TABLE IF NOT EXISTS media_entries (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    channel      TEXT NOT NULL,
    theme        TEXT NOT NULL,
    title        TEXT NOT NULL,
    date         TEXT NOT NULL DEFAULT '',
    time         TEXT NOT NULL DEFAULT '',
    duration     TEXT NOT NULL DEFAULT '',
    size_mb      INTEGER NOT NULL DEFAULT 0,
    description  TEXT NOT NULL DEFAULT '',
    url          TEXT NOT NULL DEFAULT '',
    website      TEXT NOT NULL DEFAULT '',
    subtitle_url TEXT NOT NULL DEFAULT '',
    small_url    TEXT NOT NULL DEFAULT '',
    hd_url       TEXT NOT NULL DEFAULT '',
    timestamp    INTEGER NOT NULL DEFAULT 0,
    geo          TEXT NOT NULL DEFAULT '',
    is_new       INTEGER NOT NULL DEFAULT 0,
    UNIQUE (channel, theme, title)
)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_channel ON media_entries(channel)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_theme ON media_entries(theme)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_timestamp ON media_entries(timestamp DESC)`,
					`CREATE INDEX IF NOT EXISTS idx_media_entries_channel_theme ON media_entries(channel, theme)`,
				},
			},
		}
	}
}

// MigrateUp brings the schema up to the current version. Applied versions
// are tracked in schema_migrations, so restarts are cheap no-ops.
func MigrateUp(db *sql.DB, engine Engine) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY
)`); err != nil {
		return fmt.Errorf("MigrateUp: create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("MigrateUp: read current version: %w", err)
	}

	for _, m := range migrationsFor(engine) {
		if m.version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("MigrateUp: begin version %d: %w", m.version, err)
		}
		for _, stmt := range m.statements {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("MigrateUp: version %d: %w", m.version, err)
			}
		}
		if _, err := tx.Exec(insertVersionSQL(engine), m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("MigrateUp: record version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("MigrateUp: commit version %d: %w", m.version, err)
		}

		// Best-effort statements run outside the transaction: a failing
		// CREATE EXTENSION must not poison the schema step.
		for _, stmt := range m.bestEffort {
			_, _ = db.Exec(stmt)
		}
	}

	return nil
}

// MigrateDown removes the catalog schema. Use with caution: this deletes
// all imported entries.
func MigrateDown(db *sql.DB) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS media_entries`,
		`DROP TABLE IF EXISTS schema_migrations`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}
	return nil
}

func insertVersionSQL(engine Engine) string {
	if engine == EnginePostgres {
		return `INSERT INTO schema_migrations (version) VALUES ($1)`
	}
	return `INSERT INTO schema_migrations (version) VALUES (?)`
}
