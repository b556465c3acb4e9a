package filmliste

import (
	"context"
	"net/http"
	"time"

	syncUC "kuckmal/internal/usecase/sync"
)

// DiffHandler triggers a diff list import.
type DiffHandler struct {
	Svc      *syncUC.Service
	Interval time.Duration
}

// ServeHTTP starts a diff synchronization.
// @Summary      Trigger diff sync
// @Description  Downloads and imports the diff list; incoming entries replace stored ones. With stream=1 the response is a text/event-stream of status events ending in a done event; otherwise 202 with a status snapshot.
// @Tags         filmliste
// @Security     BearerAuth
// @Produce      json
// @Param        stream query bool false "Stream progress as server-sent events"
// @Success      202 {object} sync.Status "Run started"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      403 {object} respond.ErrorBody "Admin role required"
// @Failure      409 {object} respond.ErrorBody "A run is already in progress"
// @Router       /api/filmliste/diff [post]
func (h DiffHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serveTrigger(w, r, h.Svc, func(ctx context.Context) (*syncUC.Result, error) {
		return h.Svc.RunDiff(ctx)
	}, h.Interval)
}
