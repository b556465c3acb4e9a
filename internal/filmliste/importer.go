package filmliste

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"kuckmal/internal/domain/entity"
	"kuckmal/internal/repository"

	"golang.org/x/sync/errgroup"
)

// DefaultImportWorkers is the worker pool size for parallel ingestion.
const DefaultImportWorkers = 4

// ImportResult reports what an import run produced.
type ImportResult struct {
	Meta    ListMeta
	Parsed  int64
	Written int64
	// Skipped counts records the parser could not turn into valid
	// entries. Duplicate rows dropped by a conflict-ignore import show
	// up as Parsed minus Written instead.
	Skipped int64
}

// Importer streams a parsed catalog into the media repository.
type Importer struct {
	repo    repository.MediaRepository
	mode    IngestMode
	workers int
}

// NewImporter creates an Importer. Workers below 1 fall back to
// DefaultImportWorkers; the count only matters in parallel mode.
func NewImporter(repo repository.MediaRepository, mode IngestMode, workers int) *Importer {
	if workers < 1 {
		workers = DefaultImportWorkers
	}
	return &Importer{repo: repo, mode: mode, workers: workers}
}

// Run parses the document on r and writes every batch through the
// repository. Each batch is written exactly once. onBatch, when non-nil,
// receives the running written total after each batch commits.
//
// Cancelling ctx stops new batches from being scheduled; batches already
// writing are allowed to finish so the store is never left mid-chunk.
func (im *Importer) Run(ctx context.Context, r io.Reader, mode repository.ConflictMode, onBatch func(written int64)) (*ImportResult, error) {
	effective := im.mode.Effective()
	slog.Info("starting catalog import",
		"mode", effective.String(),
		"workers", im.workers,
		"conflict_update", mode == repository.OnConflictUpdate)

	if effective == IngestSequential {
		return im.runSequential(ctx, r, mode, onBatch)
	}
	return im.runParallel(ctx, r, mode, onBatch)
}

func (im *Importer) runSequential(ctx context.Context, r io.Reader, mode repository.ConflictMode, onBatch func(written int64)) (*ImportResult, error) {
	// Writes run on an uncancellable context so an interrupt never
	// aborts a transaction halfway; the check before each write is what
	// stops the run.
	writeCtx := context.WithoutCancel(ctx)
	var written int64

	parsed, err := Parse(ctx, r, func(ctx context.Context, batch []*entity.MediaEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := im.repo.UpsertBatch(writeCtx, batch, mode)
		if err != nil {
			return err
		}
		written += n
		if onBatch != nil {
			onBatch(written)
		}
		return nil
	})

	res := resultFrom(parsed, written)
	if err != nil {
		return res, fmt.Errorf("Importer.Run: sequential: %w", err)
	}
	return res, nil
}

func (im *Importer) runParallel(ctx context.Context, r io.Reader, mode repository.ConflictMode, onBatch func(written int64)) (*ImportResult, error) {
	g, gctx := errgroup.WithContext(ctx)
	batches := make(chan []*entity.MediaEntry, im.workers)
	writeCtx := context.WithoutCancel(ctx)

	var written int64
	for i := 0; i < im.workers; i++ {
		g.Go(func() error {
			for batch := range batches {
				// Drain without writing once the run is aborted.
				if err := gctx.Err(); err != nil {
					return err
				}
				n, err := im.repo.UpsertBatch(writeCtx, batch, mode)
				if err != nil {
					return err
				}
				total := atomic.AddInt64(&written, n)
				if onBatch != nil {
					onBatch(total)
				}
			}
			return nil
		})
	}

	var parsed *ParseResult
	g.Go(func() error {
		defer close(batches)
		var err error
		parsed, err = Parse(gctx, r, func(ctx context.Context, batch []*entity.MediaEntry) error {
			select {
			case batches <- batch:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		return err
	})

	err := g.Wait()
	res := resultFrom(parsed, atomic.LoadInt64(&written))
	if err != nil {
		return res, fmt.Errorf("Importer.Run: parallel: %w", err)
	}
	return res, nil
}

func resultFrom(parsed *ParseResult, written int64) *ImportResult {
	res := &ImportResult{Written: written}
	if parsed != nil {
		res.Meta = parsed.Meta
		res.Parsed = parsed.Parsed
		res.Skipped = parsed.Skipped
	}
	return res
}
