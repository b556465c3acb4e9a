// Package filmliste exposes the catalog synchronization pipeline over
// HTTP: triggering full and diff imports, watching their progress, and
// canceling a run. All routes require the admin role.
package filmliste

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"kuckmal/internal/handler/http/respond"
	syncUC "kuckmal/internal/usecase/sync"
)

// defaultStreamInterval is how often a streaming trigger emits a status
// event while the run is in flight.
const defaultStreamInterval = 500 * time.Millisecond

// runFunc starts one sync run and blocks until it finishes.
type runFunc func(ctx context.Context) (*syncUC.Result, error)

// serveTrigger starts a run and answers either immediately (202 plus a
// status snapshot) or, with stream=1, with a server-sent event stream
// that follows the run to its end. The run itself is detached from the
// request context: closing the connection never aborts an import.
func serveTrigger(w http.ResponseWriter, r *http.Request, svc *syncUC.Service, run runFunc, interval time.Duration) {
	if svc.Status().Running {
		respond.Error(w, http.StatusConflict, respond.CodeConflict, syncUC.ErrSyncInProgress)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	done := make(chan error, 1)
	go func() {
		_, err := run(ctx)
		if err != nil && !errors.Is(err, syncUC.ErrSyncInProgress) {
			slog.Error("triggered sync failed", slog.Any("error", err))
		}
		done <- err
	}()

	if r.URL.Query().Get("stream") == "" {
		// The Status pre-check above is only a fast path; the run
		// itself claims the single-flight slot. Give the goroutine a
		// moment so the loser of two simultaneous triggers answers 409
		// instead of a 202 for a run that never started.
		select {
		case err := <-done:
			if errors.Is(err, syncUC.ErrSyncInProgress) {
				respond.Error(w, http.StatusConflict, respond.CodeConflict, syncUC.ErrSyncInProgress)
				return
			}
		case <-time.After(50 * time.Millisecond):
		}
		respond.JSON(w, http.StatusAccepted, svc.Status())
		return
	}

	streamRun(w, r, svc, done, interval)
}

// streamRun emits status events until the run finishes, then a final
// done event carrying the terminal status.
func streamRun(w http.ResponseWriter, r *http.Request, svc *syncUC.Service, done <-chan error, interval time.Duration) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal,
			errors.New("streaming unsupported by connection"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if interval <= 0 {
		interval = defaultStreamInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	writeEvent(w, flusher, "status", svc.Status())
	for {
		select {
		case <-done:
			// finish ran before the channel fired, the snapshot is terminal.
			writeEvent(w, flusher, "done", svc.Status())
			return
		case <-ticker.C:
			writeEvent(w, flusher, "status", svc.Status())
		case <-r.Context().Done():
			// Client gone; the run keeps going on its detached context.
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode stream event", slog.Any("error", err))
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
