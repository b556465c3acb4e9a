package filmliste

import (
	"context"
	"net/http"
	"strconv"
	"time"

	syncUC "kuckmal/internal/usecase/sync"
)

// SyncHandler triggers a full list import.
type SyncHandler struct {
	Svc *syncUC.Service
	// Interval overrides the status event cadence for streaming
	// responses. Zero means the default.
	Interval time.Duration
}

// ServeHTTP starts a full synchronization.
// @Summary      Trigger full sync
// @Description  Downloads and imports the full list. With force=1 the stored catalog is wiped after a successful download and rebuilt. With stream=1 the response is a text/event-stream of status events ending in a done event; otherwise 202 with a status snapshot.
// @Tags         filmliste
// @Security     BearerAuth
// @Produce      json
// @Param        force  query bool false "Wipe the catalog before importing"
// @Param        stream query bool false "Stream progress as server-sent events"
// @Success      202 {object} sync.Status "Run started"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      403 {object} respond.ErrorBody "Admin role required"
// @Failure      409 {object} respond.ErrorBody "A run is already in progress"
// @Router       /api/filmliste/sync [post]
func (h SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	serveTrigger(w, r, h.Svc, func(ctx context.Context) (*syncUC.Result, error) {
		return h.Svc.RunFull(ctx, force)
	}, h.Interval)
}
