package entry

import (
	"errors"
	"net/http"

	"kuckmal/internal/common/pagination"
	"kuckmal/internal/handler/http/respond"
	searchUC "kuckmal/internal/usecase/search"
)

type SearchHandler struct{ Svc *searchUC.Service }

// ServeHTTP searches the catalog.
// @Summary      Search entries
// @Description  Word-order independent AND search over title, description, and theme. Every query word must match at least one of the three, case-insensitive.
// @Tags         search
// @Produce      json
// @Param        q       query string true  "Search words, whitespace separated"
// @Param        channel query string false "Exact channel match"
// @Param        theme   query string false "Exact theme match"
// @Param        limit   query int    false "Items per page" default(100) maximum(10000)
// @Param        offset  query int    false "Rows to skip" default(0)
// @Success      200 {object} SearchResponse "Matches with pagination"
// @Failure      400 {object} respond.ErrorBody "Empty query"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	win := pagination.ParseQueryParams(r, h.Svc.Pagination)

	result, err := h.Svc.Search(r.Context(), searchUC.Params{
		Query:   q.Get("q"),
		Channel: q.Get("channel"),
		Theme:   q.Get("theme"),
		Limit:   win.Limit,
		Offset:  win.Offset,
	})
	if err != nil {
		if errors.Is(err, searchUC.ErrEmptyQuery) {
			respond.Error(w, http.StatusBadRequest, respond.CodeValidation, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	dtos := toDTOs(result.Entries)
	respond.JSON(w, http.StatusOK, SearchResponse{
		Data:   dtos,
		Count:  len(dtos),
		Total:  result.Total,
		Offset: result.Window.Offset,
		Limit:  result.Window.Limit,
		Query:  result.Query,
	})
}
