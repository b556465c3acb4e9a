package catalog

import (
	"net/http"

	"kuckmal/internal/handler/http/respond"
	browseUC "kuckmal/internal/usecase/browse"
)

type StatsHandler struct{ Svc *browseUC.Service }

// ServeHTTP returns catalog statistics.
// @Summary      Catalog statistics
// @Description  Returns aggregated catalog statistics: entry and channel counts, theme count, newest broadcast timestamp, and the number of entries flagged new by the last import.
// @Tags         catalog
// @Produce      json
// @Success      200 {object} StatsResponse "Aggregated statistics"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/stats [get]
func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	respond.JSON(w, http.StatusOK, StatsResponse{
		TotalEntries:    stats.TotalEntries,
		ChannelCount:    stats.ChannelCount,
		ThemeCount:      stats.ThemeCount,
		LatestTimestamp: stats.LatestTimestamp,
		NewEntriesCount: stats.NewEntries,
	})
}
