package catalog

import (
	"net/http"
	"strconv"

	"kuckmal/internal/common/pagination"
	"kuckmal/internal/handler/http/respond"
	"kuckmal/internal/repository"
	browseUC "kuckmal/internal/usecase/browse"
)

type ThemesHandler struct{ Svc *browseUC.Service }

// ServeHTTP lists themes.
// @Summary      List themes
// @Description  Returns distinct theme names, optionally narrowed to one channel and a minimum broadcast timestamp.
// @Tags         catalog
// @Produce      json
// @Param        channel      query string false "Exact channel match"
// @Param        minTimestamp query int    false "Only themes with entries broadcast at or after this Unix timestamp"
// @Param        limit        query int    false "Items per page" default(100) maximum(10000)
// @Param        offset       query int    false "Rows to skip" default(0)
// @Success      200 {object} ThemesResponse "Theme names with pagination"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/themes [get]
func (h ThemesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	win := pagination.ParseQueryParams(r, h.Svc.Pagination)

	result, err := h.Svc.Themes(r.Context(), repository.ThemeFilter{
		Channel:      r.URL.Query().Get("channel"),
		MinTimestamp: queryInt64(r, "minTimestamp"),
		Limit:        win.Limit,
		Offset:       win.Offset,
	})
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	themes := result.Themes
	if themes == nil {
		themes = []string{}
	}
	respond.JSON(w, http.StatusOK, ThemesResponse{
		Data:   themes,
		Count:  len(themes),
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
