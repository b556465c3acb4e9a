package worker

import (
	"fmt"
	"log/slog"
	"time"

	"kuckmal/internal/filmliste"
	"kuckmal/internal/pkg/config"
)

// WorkerConfig holds the configuration for the sync worker component.
// It controls the full and diff schedules, the scheduler timezone, the
// per-run timeout, import parallelism, and the health check port.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// All fields have defaults and validation rules so the worker can start
// safely even with invalid or missing configuration.
//
// Example usage:
//
//	// Use defaults
//	config := DefaultConfig()
//
//	// Load from environment with fallback
//	config, err := LoadConfigFromEnv(logger, metrics)
//	if err != nil {
//	    // Never happens with the fail-open strategy
//	    log.Fatal("unexpected configuration error: %v", err)
//	}
type WorkerConfig struct {
	// FullSchedule is the cron expression for full catalog refreshes.
	// The published full list rolls over in the small hours, so the
	// default runs well after that.
	// Format: "minute hour day month weekday"
	// Default: "0 4 * * *" (every day at 04:00)
	FullSchedule string

	// DiffSchedule is the cron expression for differential imports.
	// Diff lists are published throughout the day; half-hourly keeps
	// the catalog close to live without hammering the mirrors.
	// Default: "*/30 * * * *"
	DiffSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// The broadcasters publish on German time, so schedules default to it.
	// Example: "Europe/Berlin", "UTC"
	// Default: "Europe/Berlin"
	Timezone string

	// SyncTimeout is the maximum duration for a single sync run,
	// covering download, decompression, and import together.
	// Range: 1 minute to 4 hours
	// Default: 1 hour
	SyncTimeout time.Duration

	// Workers is the import worker pool size. Only parallel ingest
	// mode uses more than one.
	// Range: 1-32
	// Default: filmliste.DefaultImportWorkers
	Workers int

	// HealthPort is the port number for the health check HTTP server.
	// Range: 1024-65535 (avoid privileged ports)
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with production-ready defaults:
// a daily full refresh at 04:00 Berlin time, half-hourly diffs, a
// one-hour run timeout, and the standard import pool size.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		FullSchedule: "0 4 * * *",
		DiffSchedule: "*/30 * * * *",
		Timezone:     "Europe/Berlin",
		SyncTimeout:  1 * time.Hour,
		Workers:      filmliste.DefaultImportWorkers,
		HealthPort:   9091,
	}
}

// Validate checks if the configuration values are valid.
// Each field is validated with the reusable validators from
// internal/pkg/config; all failures are collected and returned together.
//
// Validation rules:
//   - FullSchedule, DiffSchedule: valid 5-field cron expressions
//   - Timezone: valid IANA timezone name
//   - SyncTimeout: positive
//   - Workers: between 1 and 32 (inclusive)
//   - HealthPort: between 1024 and 65535
//
// Returns:
//   - error: nil if valid, aggregated error otherwise
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.FullSchedule); err != nil {
		errors = append(errors, fmt.Errorf("full schedule: %w", err))
	}

	if err := config.ValidateCronSchedule(c.DiffSchedule); err != nil {
		errors = append(errors, fmt.Errorf("diff schedule: %w", err))
	}

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}

	if err := config.ValidatePositiveDuration(c.SyncTimeout); err != nil {
		errors = append(errors, fmt.Errorf("sync timeout: %w", err))
	}

	if err := config.ValidateIntRange(c.Workers, 1, 32); err != nil {
		errors = append(errors, fmt.Errorf("workers: %w", err))
	}

	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to default values on failure.
//
// This function implements the fail-open strategy:
//  1. Start with DefaultConfig() as base
//  2. Load each field from environment variables
//  3. Validate each loaded value
//  4. If validation fails: use the default, log a warning, increment metrics
//  5. Never return an error - always return a valid configuration
//
// Environment variables:
//   - SYNC_FULL_SCHEDULE: Cron expression (default: "0 4 * * *")
//   - SYNC_DIFF_SCHEDULE: Cron expression (default: "*/30 * * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "Europe/Berlin")
//   - SYNC_TIMEOUT: Duration string 1m-4h, e.g. "45m" (default: 1 hour)
//   - SYNC_WORKERS: Integer 1-32 (default: filmliste.DefaultImportWorkers)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//
// Metrics updated:
//   - ValidationErrorsTotal: incremented for each validation failure
//   - FallbacksTotal: incremented for each fallback applied
//   - FallbackActive: 1 if any fallback is active, 0 otherwise
//   - LoadTimestamp: set to the current time after the load
//
// Returns:
//   - *WorkerConfig: valid configuration (never nil)
//   - error: always nil (fail-open strategy)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvWithFallback("SYNC_FULL_SCHEDULE", cfg.FullSchedule, config.ValidateCronSchedule)
	cfg.FullSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("full_schedule")
		metrics.RecordFallback("full_schedule", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "FullSchedule"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvWithFallback("SYNC_DIFF_SCHEDULE", cfg.DiffSchedule, config.ValidateCronSchedule)
	cfg.DiffSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("diff_schedule")
		metrics.RecordFallback("diff_schedule", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "DiffSchedule"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "Timezone"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvDuration("SYNC_TIMEOUT", cfg.SyncTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.SyncTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("sync_timeout")
		metrics.RecordFallback("sync_timeout", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "SyncTimeout"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("SYNC_WORKERS", cfg.Workers, func(v int) error {
		return config.ValidateIntRange(v, 1, 32)
	})
	cfg.Workers = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("workers")
		metrics.RecordFallback("workers", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "Workers"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "HealthPort"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	// Always return valid config (fail-open strategy)
	return &cfg, nil
}
