package filmliste

import (
	"net/http"

	syncUC "kuckmal/internal/usecase/sync"
)

// Register registers the sync pipeline routes. Every route, including
// the read-only status, goes through the admin middleware: the pipeline
// is an operational surface, not part of the public catalog API.
func Register(mux *http.ServeMux, svc *syncUC.Service, admin func(http.Handler) http.Handler) {
	mux.Handle("POST   /api/filmliste/sync", admin(SyncHandler{Svc: svc}))
	mux.Handle("POST   /api/filmliste/diff", admin(DiffHandler{Svc: svc}))
	mux.Handle("GET    /api/filmliste/status", admin(StatusHandler{Svc: svc}))
	mux.Handle("POST   /api/filmliste/cancel", admin(CancelHandler{Svc: svc}))
}
