package catalog

import (
	"net/http"

	"kuckmal/internal/handler/http/respond"
	browseUC "kuckmal/internal/usecase/browse"
)

type BroadcastersHandler struct{ Svc *browseUC.Service }

// ServeHTTP lists broadcasters.
// @Summary      List broadcasters
// @Description  Returns the static broadcaster table with brand colors and abbreviations for channel pickers.
// @Tags         catalog
// @Produce      json
// @Success      200 {object} BroadcastersResponse "Broadcaster table"
// @Router       /api/broadcasters [get]
func (h BroadcastersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	broadcasters := h.Svc.Broadcasters()

	respond.JSON(w, http.StatusOK, BroadcastersResponse{
		Data:  broadcasters,
		Count: len(broadcasters),
	})
}
