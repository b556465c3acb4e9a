// Package sync orchestrates catalog synchronization: downloading a
// published list, decompressing it, and importing the parsed entries
// into the media repository. Only one run is allowed at a time.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	stdsync "sync"
	"time"

	"kuckmal/internal/filmliste"
	"kuckmal/internal/observability/metrics"
	"kuckmal/internal/repository"
)

// ErrSyncInProgress is returned when a run is requested while another
// one is still active.
var ErrSyncInProgress = errors.New("sync already in progress")

// Stages a run moves through. The terminal stages double as the status
// the run finished with.
const (
	StageIdle       = "idle"
	StageDownload   = "download"
	StageDecompress = "decompress"
	StageImport     = "import"
	StageDone       = "done"
	StageError      = "error"
	StageCanceled   = "canceled"
)

// Downloader fetches a published list into a local file.
type Downloader interface {
	Download(ctx context.Context, url, dst string, onProgress filmliste.ProgressFunc) error
}

// CachePurger invalidates cached query results after an import changed
// the catalog.
type CachePurger interface {
	Purge(ctx context.Context) error
}

// PurgeFunc adapts a function to the CachePurger interface.
type PurgeFunc func(ctx context.Context) error

// Purge implements CachePurger.
func (f PurgeFunc) Purge(ctx context.Context) error { return f(ctx) }

// Config holds the tunables of the sync pipeline.
type Config struct {
	WorkDir    string // where downloaded archives are kept
	FullURL    string
	DiffURL    string
	IngestMode filmliste.IngestMode
	Workers    int
}

// Status is a point-in-time snapshot of the pipeline.
type Status struct {
	Running         bool       `json:"running"`
	Kind            string     `json:"kind,omitempty"` // full | diff
	Stage           string     `json:"stage"`
	DownloadedBytes int64      `json:"downloadedBytes"`
	TotalBytes      int64      `json:"totalBytes"`
	EntriesWritten  int64      `json:"entriesWritten"`
	EntriesParsed   int64      `json:"entriesParsed"`
	EntriesSkipped  int64      `json:"entriesSkipped"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	FinishedAt      *time.Time `json:"finishedAt,omitempty"`
	LastError       string     `json:"lastError,omitempty"`
}

// Result reports a completed run.
type Result struct {
	Kind     string
	ListID   string
	Parsed   int64
	Written  int64
	Skipped  int64
	Removed  int64 // rows wiped by a forced full sync
	Duration time.Duration
}

// Service runs catalog synchronizations. All exported methods are safe
// for concurrent use.
type Service struct {
	repo       repository.MediaRepository
	downloader Downloader
	cfg        Config
	purgers    []CachePurger

	mu     stdsync.Mutex
	status Status
	cancel context.CancelFunc
}

// NewService creates a sync Service. Purgers run once after every
// import that changed the catalog; pass the Redis catalog purge and the
// in-process search cache here.
func NewService(repo repository.MediaRepository, downloader Downloader, cfg Config, purgers ...CachePurger) *Service {
	if cfg.FullURL == "" {
		cfg.FullURL = filmliste.DefaultFullListURL
	}
	if cfg.DiffURL == "" {
		cfg.DiffURL = filmliste.DefaultDiffListURL
	}
	if cfg.Workers < 1 {
		cfg.Workers = filmliste.DefaultImportWorkers
	}
	return &Service{
		repo:       repo,
		downloader: downloader,
		cfg:        cfg,
		purgers:    purgers,
		status:     Status{Stage: StageIdle},
	}
}

// RunFull downloads and imports the full list. With force, the stored
// catalog is wiped after a successful download and rebuilt from
// scratch; otherwise existing entries win over incoming duplicates.
func (s *Service) RunFull(ctx context.Context, force bool) (*Result, error) {
	return s.run(ctx, runConfig{
		kind:     "full",
		url:      s.cfg.FullURL,
		filename: "Filmliste-akt.xz",
		conflict: repository.OnConflictIgnore,
		wipe:     force,
	})
}

// RunDiff downloads and imports the diff list. Incoming entries replace
// stored ones so corrections propagate.
func (s *Service) RunDiff(ctx context.Context) (*Result, error) {
	return s.run(ctx, runConfig{
		kind:     "diff",
		url:      s.cfg.DiffURL,
		filename: "Filmliste-diff.xz",
		conflict: repository.OnConflictUpdate,
	})
}

// Status returns a snapshot of the current or last run.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Cancel aborts the in-flight run. It is a no-op when nothing runs.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

type runConfig struct {
	kind     string
	url      string
	filename string
	conflict repository.ConflictMode
	wipe     bool
}

func (s *Service) run(ctx context.Context, rc runConfig) (*Result, error) {
	runCtx, err := s.begin(ctx, rc.kind)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, runErr := s.execute(runCtx, rc)
	res.Duration = time.Since(start)

	status := StageDone
	switch {
	case errors.Is(runErr, context.Canceled):
		status = StageCanceled
	case runErr != nil:
		status = StageError
	}
	s.finish(status, res, runErr)
	metrics.RecordSyncRun(rc.kind, statusLabel(status), res.Duration)

	// Even a failed or canceled run may have changed the catalog.
	if res.Written > 0 || res.Removed > 0 {
		s.afterImport(context.WithoutCancel(ctx), rc.kind, res)
	}

	if runErr != nil {
		return res, fmt.Errorf("sync %s: %w", rc.kind, runErr)
	}

	slog.Info("sync completed",
		slog.String("kind", rc.kind),
		slog.String("list_id", res.ListID),
		slog.Int64("parsed", res.Parsed),
		slog.Int64("written", res.Written),
		slog.Int64("skipped", res.Skipped),
		slog.Int64("removed", res.Removed),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

// begin claims the single-flight slot and resets the status.
func (s *Service) begin(ctx context.Context, kind string) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Running {
		return nil, ErrSyncInProgress
	}
	runCtx, cancel := context.WithCancel(ctx)
	now := time.Now()
	s.cancel = cancel
	s.status = Status{
		Running:   true,
		Kind:      kind,
		Stage:     StageDownload,
		StartedAt: &now,
	}
	return runCtx, nil
}

func (s *Service) finish(stage string, res *Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	now := time.Now()
	s.status.Running = false
	s.status.Stage = stage
	s.status.FinishedAt = &now
	s.status.EntriesParsed = res.Parsed
	s.status.EntriesWritten = res.Written
	s.status.EntriesSkipped = res.Skipped
	if err != nil {
		s.status.LastError = err.Error()
	}
}

func (s *Service) execute(ctx context.Context, rc runConfig) (*Result, error) {
	res := &Result{Kind: rc.kind}

	dst := filepath.Join(s.cfg.WorkDir, rc.filename)
	downloadStart := time.Now()
	err := s.downloader.Download(ctx, rc.url, dst, func(p filmliste.Progress) {
		s.setProgress(p)
	})
	if err != nil {
		metrics.RecordDownloadFailed(rc.kind, time.Since(downloadStart))
		return res, fmt.Errorf("download: %w", err)
	}
	metrics.RecordDownloadSuccess(rc.kind, time.Since(downloadStart), s.downloadedBytes())

	// Wipe only after the replacement list is safely on disk.
	if rc.wipe {
		removed, err := s.repo.DeleteAll(ctx)
		if err != nil {
			return res, fmt.Errorf("wipe catalog: %w", err)
		}
		res.Removed = removed
		slog.Info("catalog wiped for forced import", slog.Int64("removed", removed))
	}

	s.setStage(StageDecompress)
	archive, err := filmliste.OpenArchive(dst)
	if err != nil {
		return res, fmt.Errorf("decompress: %w", err)
	}
	defer func() { _ = archive.Close() }()

	// Decompression streams into the parser, so the import stage covers
	// both from here on.
	s.setStage(StageImport)
	importer := filmliste.NewImporter(s.repo, s.cfg.IngestMode, s.cfg.Workers)
	imported, err := importer.Run(ctx, archive, rc.conflict, func(written int64) {
		s.setWritten(written)
	})
	if imported != nil {
		res.ListID = imported.Meta.ID
		res.Parsed = imported.Parsed
		res.Written = imported.Written
		res.Skipped = imported.Skipped
	}
	if err != nil {
		return res, fmt.Errorf("import: %w", err)
	}
	return res, nil
}

// afterImport refreshes gauges and purges query caches once the catalog
// changed. Failures here are logged, never returned: the import itself
// succeeded.
func (s *Service) afterImport(ctx context.Context, kind string, res *Result) {
	metrics.RecordEntriesImported(kind, res.Written, res.Skipped)

	for _, p := range s.purgers {
		if err := p.Purge(ctx); err != nil {
			slog.Warn("cache purge after import failed",
				slog.String("kind", kind),
				slog.Any("error", err))
		}
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		slog.Warn("catalog gauge refresh failed", slog.Any("error", err))
		return
	}
	metrics.UpdateCatalogGauges(stats.TotalEntries, stats.ChannelCount)
}

func (s *Service) setStage(stage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Stage = stage
}

func (s *Service) setProgress(p filmliste.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.DownloadedBytes = p.Downloaded
	s.status.TotalBytes = p.Total
}

func (s *Service) setWritten(written int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.EntriesWritten = written
}

func (s *Service) downloadedBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.DownloadedBytes
}

func statusLabel(stage string) string {
	switch stage {
	case StageDone:
		return "success"
	case StageCanceled:
		return "canceled"
	default:
		return "error"
	}
}
