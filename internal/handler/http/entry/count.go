package entry

import (
	"net/http"

	"kuckmal/internal/handler/http/respond"
	browseUC "kuckmal/internal/usecase/browse"
)

type CountHandler struct{ Svc *browseUC.Service }

// ServeHTTP returns the entry count.
// @Summary      Count entries
// @Description  Returns the total number of stored catalog entries.
// @Tags         entries
// @Produce      json
// @Success      200 {object} CountResponse "Total entry count"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/entries/count [get]
func (h CountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	count, err := h.Svc.Count(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	respond.JSON(w, http.StatusOK, CountResponse{Count: count})
}
