package filmliste

import (
	"net/http"

	"kuckmal/internal/handler/http/respond"
	syncUC "kuckmal/internal/usecase/sync"
)

// StatusHandler reports the state of the current or last run.
type StatusHandler struct{ Svc *syncUC.Service }

// ServeHTTP returns a status snapshot.
// @Summary      Sync status
// @Description  Returns the progress of the running synchronization, or the outcome of the last one. Stage is idle until the first run.
// @Tags         filmliste
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} sync.Status "Status snapshot"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      403 {object} respond.ErrorBody "Admin role required"
// @Router       /api/filmliste/status [get]
func (h StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Svc.Status())
}
