package entry

import (
	"net/http"

	"kuckmal/internal/handler/http/respond"
	browseUC "kuckmal/internal/usecase/browse"
)

type RecentHandler struct{ Svc *browseUC.Service }

// ServeHTTP lists recent entries.
// @Summary      List recent entries
// @Description  Returns entries broadcast at or after minTimestamp, newest first. A zero minTimestamp matches the whole catalog.
// @Tags         entries
// @Produce      json
// @Param        minTimestamp query int false "Unix timestamp lower bound"
// @Param        limit        query int false "Maximum entries to return" default(100) maximum(10000)
// @Success      200 {object} RecentResponse "Recent entries"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/entries/recent [get]
func (h RecentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	minTimestamp := queryInt64(r, "minTimestamp")
	limit := int(queryInt64(r, "limit"))

	entries, err := h.Svc.Recent(r.Context(), minTimestamp, limit)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	dtos := toDTOs(entries)
	respond.JSON(w, http.StatusOK, RecentResponse{
		Data:         dtos,
		Count:        len(dtos),
		MinTimestamp: minTimestamp,
	})
}
