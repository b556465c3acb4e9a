// Package db opens and migrates the catalog database. Both supported
// engines are driven through database/sql: PostgreSQL via the pgx stdlib
// driver and SQLite via the pure-Go modernc driver.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Engine identifies which SQL dialect the opened database speaks.
type Engine string

const (
	EngineSQLite   Engine = "sqlite"
	EnginePostgres Engine = "postgres"
)

// defaultSQLitePath is used when neither DATABASE_URL nor KUCKMAL_DB is set.
const defaultSQLitePath = "data/kuckmal.db"

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open creates and configures the catalog database connection pool.
// DATABASE_URL selects the engine: postgres:// and postgresql:// URLs go
// through pgx, everything else is treated as a SQLite path. When
// DATABASE_URL is unset, a local SQLite file (KUCKMAL_DB, default
// data/kuckmal.db) is used, so the server runs without any setup.
func Open() (*sql.DB, Engine) {
	dsn := os.Getenv("DATABASE_URL")

	var (
		db     *sql.DB
		engine Engine
		err    error
	)
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		engine = EnginePostgres
		db, err = sql.Open("pgx", dsn)
	default:
		engine = EngineSQLite
		path := dsn
		if path == "" {
			path = os.Getenv("KUCKMAL_DB")
		}
		if path == "" {
			path = defaultSQLitePath
		}
		path = strings.TrimPrefix(path, "sqlite://")
		if dir := filepath.Dir(path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o750); mkErr != nil {
				log.Fatalf("failed to create database directory: %v", mkErr)
			}
		}
		db, err = sql.Open("sqlite", sqliteDSN(path))
	}
	if err != nil {
		log.Fatal(err)
	}

	cfg := getConnectionConfigFromEnv()
	if engine == EngineSQLite {
		// WAL allows concurrent readers but still a single writer; a
		// small pool keeps busy_timeout contention rare.
		if cfg.MaxOpenConns > 8 {
			cfg.MaxOpenConns = 8
		}
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("engine", string(engine)),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	slog.Info("database connection established successfully")
	return db, engine
}

// sqliteDSN builds the modernc DSN with the pragmas a read-heavy catalog
// needs: WAL journaling and a busy timeout to ride out import bursts.
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", path)
}

// getConnectionConfigFromEnv reads connection pool configuration from
// environment variables, falling back to defaults if not set.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if maxOpen := os.Getenv("DB_MAX_OPEN_CONNS"); maxOpen != "" {
		if val, err := strconv.Atoi(maxOpen); err == nil && val > 0 {
			cfg.MaxOpenConns = val
		}
	}

	if maxIdle := os.Getenv("DB_MAX_IDLE_CONNS"); maxIdle != "" {
		if val, err := strconv.Atoi(maxIdle); err == nil && val > 0 {
			cfg.MaxIdleConns = val
		}
	}

	if lifetime := os.Getenv("DB_CONN_MAX_LIFETIME"); lifetime != "" {
		if val, err := time.ParseDuration(lifetime); err == nil && val > 0 {
			cfg.ConnMaxLifetime = val
		}
	}

	if idleTime := os.Getenv("DB_CONN_MAX_IDLE_TIME"); idleTime != "" {
		if val, err := time.ParseDuration(idleTime); err == nil && val > 0 {
			cfg.ConnMaxIdleTime = val
		}
	}

	return cfg
}
