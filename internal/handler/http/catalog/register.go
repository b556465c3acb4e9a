package catalog

import (
	"net/http"

	browseUC "kuckmal/internal/usecase/browse"
)

// Register registers the catalog vocabulary routes with the given mux.
// All of them are public reads.
func Register(mux *http.ServeMux, svc *browseUC.Service) {
	mux.Handle("GET /api/channels", ChannelsHandler{svc})
	mux.Handle("GET /api/themes", ThemesHandler{svc})
	mux.Handle("GET /api/broadcasters", BroadcastersHandler{svc})
	mux.Handle("GET /api/stats", StatsHandler{svc})
}
