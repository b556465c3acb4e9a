package filmliste

import (
	"net/http"

	"kuckmal/internal/handler/http/respond"
	syncUC "kuckmal/internal/usecase/sync"
)

// CancelHandler aborts the running synchronization.
type CancelHandler struct{ Svc *syncUC.Service }

// ServeHTTP requests cancellation.
// @Summary      Cancel sync
// @Description  Aborts the in-flight run. A no-op when nothing runs. Cancellation is asynchronous; the returned snapshot may still show the run as active.
// @Tags         filmliste
// @Security     BearerAuth
// @Produce      json
// @Success      202 {object} sync.Status "Status snapshot after the cancel request"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      403 {object} respond.ErrorBody "Admin role required"
// @Router       /api/filmliste/cancel [post]
func (h CancelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Svc.Cancel()
	respond.JSON(w, http.StatusAccepted, h.Svc.Status())
}
