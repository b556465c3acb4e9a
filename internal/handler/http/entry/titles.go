package entry

import (
	"net/http"
	"strconv"

	"kuckmal/internal/common/pagination"
	"kuckmal/internal/handler/http/respond"
	"kuckmal/internal/repository"
	browseUC "kuckmal/internal/usecase/browse"
)

type TitlesHandler struct{ Svc *browseUC.Service }

// ServeHTTP lists entries.
// @Summary      List entries
// @Description  Returns catalog entries newest first, optionally narrowed by channel, theme, and a minimum broadcast timestamp.
// @Tags         entries
// @Produce      json
// @Param        channel      query string false "Exact channel match"
// @Param        theme        query string false "Exact theme match"
// @Param        minTimestamp query int    false "Only entries broadcast at or after this Unix timestamp"
// @Param        limit        query int    false "Items per page" default(100) maximum(10000)
// @Param        offset       query int    false "Rows to skip" default(0)
// @Success      200 {object} ListResponse "Entries with pagination"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/titles [get]
func (h TitlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	win := pagination.ParseQueryParams(r, h.Svc.Pagination)

	result, err := h.Svc.Titles(r.Context(), repository.TitleFilter{
		Channel:      r.URL.Query().Get("channel"),
		Theme:        r.URL.Query().Get("theme"),
		MinTimestamp: queryInt64(r, "minTimestamp"),
		Limit:        win.Limit,
		Offset:       win.Offset,
	})
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	dtos := toDTOs(result.Entries)
	respond.JSON(w, http.StatusOK, ListResponse{
		Data:   dtos,
		Count:  len(dtos),
		Total:  result.Total,
		Offset: result.Window.Offset,
		Limit:  result.Window.Limit,
	})
}

// queryInt64 parses an int64 query parameter. Absent or malformed values
// count as zero so listings never fail on filter input alone.
func queryInt64(r *http.Request, key string) int64 {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
