package entry

import (
	"net/http"

	browseUC "kuckmal/internal/usecase/browse"
	searchUC "kuckmal/internal/usecase/search"
)

// Register registers all entry-related HTTP handlers with the given mux.
// Read routes are public; the bulk insert and delete routes are wrapped in
// the admin middleware handed in by the caller.
func Register(mux *http.ServeMux, svc *browseUC.Service, search *searchUC.Service, admin func(http.Handler) http.Handler) {
	mux.Handle("GET    /api/titles", TitlesHandler{Svc: svc})
	mux.Handle("GET    /api/search", SearchHandler{Svc: search})

	mux.Handle("GET    /api/entry", DetailHandler{Svc: svc})
	mux.Handle("GET    /api/entry/by-theme", DetailByThemeHandler{Svc: svc})
	mux.Handle("GET    /api/entry/by-title", DetailByTitleHandler{Svc: svc})

	mux.Handle("GET    /api/entries/recent", RecentHandler{Svc: svc})
	mux.Handle("GET    /api/entries/count", CountHandler{Svc: svc})
	mux.Handle("GET    /api/entries/diff", DiffHandler{Svc: svc})

	mux.Handle("POST   /api/entries", admin(CreateHandler{Svc: svc}))
	mux.Handle("DELETE /api/entries", admin(DeleteHandler{Svc: svc}))
}
