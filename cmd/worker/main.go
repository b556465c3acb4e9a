package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"kuckmal/internal/repository"
	"kuckmal/internal/filmliste"
	"kuckmal/internal/infra/adapter/persistence/postgres"
	"kuckmal/internal/infra/adapter/persistence/sqlite"
	"kuckmal/internal/infra/db"
	workerPkg "kuckmal/internal/infra/worker"
	"kuckmal/internal/observability/logging"
	syncUC "kuckmal/internal/usecase/sync"
)

func main() {
	logger := initLogger()
	database, engine := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("full_schedule", workerConfig.FullSchedule),
		slog.String("diff_schedule", workerConfig.DiffSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("sync_timeout", workerConfig.SyncTimeout),
		slog.Int("workers", workerConfig.Workers),
		slog.Int("health_port", workerConfig.HealthPort))

	syncSvc := setupSyncService(database, engine, workerConfig)

	startMetricsServer(ctx, logger, syncSvc)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	runCronWorker(ctx, logger, syncSvc, workerConfig, workerMetrics, healthServer)
}

// initLogger installs the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the catalog database and runs migrations. Migrations
// are idempotent, so worker and API can both apply them regardless of
// which starts first.
func initDatabase(logger *slog.Logger) (*sql.DB, db.Engine) {
	database, engine := db.Open()
	if err := db.MigrateUp(database, engine); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database, engine
}

// setupSyncService wires the sync pipeline the worker drives. The worker
// writes through the plain repository; it serves no reads, so there is
// no cache to decorate, and the server's caches expire on their TTLs.
func setupSyncService(database *sql.DB, engine db.Engine, cfg *workerPkg.WorkerConfig) *syncUC.Service {
	var repo repository.MediaRepository
	switch engine {
	case db.EnginePostgres:
		repo = postgres.NewMediaRepo(database)
	default:
		repo = sqlite.NewMediaRepo(database)
	}

	syncCfg := syncUC.Config{
		WorkDir: workDir(),
		Workers: cfg.Workers,
	}
	if base := strings.TrimSuffix(os.Getenv("MIRROR_BASE_URL"), "/"); base != "" {
		syncCfg.FullURL = base + "/Filmliste-akt.xz"
		syncCfg.DiffURL = base + "/Filmliste-diff.xz"
	}
	if mode, err := filmliste.ParseIngestMode(os.Getenv("SYNC_INGEST_MODE")); err == nil {
		syncCfg.IngestMode = mode
	}

	return syncUC.NewService(repo, filmliste.NewDownloader(nil), syncCfg)
}

func workDir() string {
	if dir := os.Getenv("SYNC_WORK_DIR"); dir != "" {
		return dir
	}
	return "data"
}

// runCronWorker schedules the full and diff syncs and blocks until a
// shutdown signal arrives. Running jobs are drained before exit.
func runCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	svc *syncUC.Service,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.FullSchedule, func() {
		runSyncJob(logger, svc, cfg, metrics, "full")
	}); err != nil {
		logger.Error("failed to schedule full sync", slog.Any("error", err))
		os.Exit(1)
	}
	if _, err := c.AddFunc(cfg.DiffSchedule, func() {
		runSyncJob(logger, svc, cfg, metrics, "diff")
	}); err != nil {
		logger.Error("failed to schedule diff sync", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	for _, entry := range c.Entries() {
		logger.Info("job scheduled", slog.Time("next_run", entry.Next))
	}
	logger.Info("worker started",
		slog.String("full_schedule", cfg.FullSchedule),
		slog.String("diff_schedule", cfg.DiffSchedule),
		slog.String("timezone", loc.String()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	logger.Info("shutting down worker...")

	// Stop scheduling and wait for a running sync to finish. The sync
	// timeout bounds how long the drain can take.
	drained := c.Stop()
	svc.Cancel()
	<-drained.Done()
	logger.Info("worker stopped")
}

// runSyncJob executes one scheduled sync with timeout and error handling.
// A run that overlaps an in-flight one is counted as skipped, not failed;
// the long full import simply wins over the half-hourly diff.
func runSyncJob(
	logger *slog.Logger,
	svc *syncUC.Service,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
	kind string,
) {
	startTime := time.Now()
	logger.Info("sync started", slog.String("kind", kind))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SyncTimeout)
	defer cancel()

	var (
		result *syncUC.Result
		err    error
	)
	if kind == "full" {
		result, err = svc.RunFull(ctx, false)
	} else {
		result, err = svc.RunDiff(ctx)
	}

	switch {
	case errors.Is(err, syncUC.ErrSyncInProgress):
		metrics.RecordSyncTrigger(kind, "skipped")
		logger.Info("sync skipped, another run in progress", slog.String("kind", kind))
		return
	case err != nil:
		metrics.RecordSyncTrigger(kind, "failure")
		metrics.RecordSyncDuration(kind, time.Since(startTime).Seconds())
		logger.Error("sync failed", slog.String("kind", kind), slog.Any("error", err))
		return
	}

	metrics.RecordSyncTrigger(kind, "success")
	metrics.RecordSyncDuration(kind, result.Duration.Seconds())
	metrics.RecordEntriesWritten(result.Written)
	metrics.RecordLastSuccess(kind)

	logger.Info("sync completed",
		slog.String("kind", kind),
		slog.String("list_id", result.ListID),
		slog.Int64("parsed", result.Parsed),
		slog.Int64("written", result.Written),
		slog.Int64("skipped", result.Skipped),
		slog.Duration("duration", result.Duration),
	)
}
