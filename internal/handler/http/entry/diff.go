package entry

import (
	"errors"
	"net/http"

	"kuckmal/internal/handler/http/respond"
	browseUC "kuckmal/internal/usecase/browse"
)

type DiffHandler struct{ Svc *browseUC.Service }

// ServeHTTP lists entries changed since a timestamp.
// @Summary      Incremental diff
// @Description  Returns entries broadcast strictly after the since timestamp in ascending order, for incremental client synchronization. Clients page by passing the last received timestamp as the next since.
// @Tags         entries
// @Produce      json
// @Param        since query int  true  "Unix timestamp to diff from (must be positive)"
// @Param        limit query int  false "Maximum entries to return" default(10000) maximum(10000)
// @Success      200 {object} DiffResponse "Changed entries, ascending"
// @Failure      400 {object} respond.ErrorBody "Missing or non-positive since"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/entries/diff [get]
func (h DiffHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	since := queryInt64(r, "since")
	limit := int(queryInt64(r, "limit"))

	entries, err := h.Svc.DiffSince(r.Context(), since, limit)
	if err != nil {
		if errors.Is(err, browseUC.ErrInvalidSince) {
			respond.Error(w, http.StatusBadRequest, respond.CodeValidation, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	dtos := toDTOs(entries)
	respond.JSON(w, http.StatusOK, DiffResponse{
		Data:  dtos,
		Count: len(dtos),
		Since: since,
	})
}
