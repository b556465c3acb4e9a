package entry

import (
	"errors"
	"net/http"

	"kuckmal/internal/domain/entity"
	"kuckmal/internal/handler/http/respond"
	browseUC "kuckmal/internal/usecase/browse"
)

type DetailHandler struct{ Svc *browseUC.Service }

// ServeHTTP looks up one entry by its full key.
// @Summary      Get entry
// @Description  Returns the single entry with the exact (channel, theme, title) key.
// @Tags         entries
// @Produce      json
// @Param        channel query string true "Channel name"
// @Param        theme   query string true "Theme name"
// @Param        title   query string true "Entry title"
// @Success      200 {object} DetailResponse "The entry"
// @Failure      400 {object} respond.ErrorBody "Missing key part"
// @Failure      404 {object} respond.ErrorBody "No entry with this key"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/entry [get]
func (h DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	e, err := h.Svc.Entry(r.Context(), q.Get("channel"), q.Get("theme"), q.Get("title"))
	if err != nil {
		respondLookupError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, DetailResponse{Data: FromEntity(e)})
}

type DetailByThemeHandler struct{ Svc *browseUC.Service }

// ServeHTTP looks up one entry by theme and title.
// @Summary      Get entry by theme
// @Description  Returns the first entry matching (theme, title) across all channels.
// @Tags         entries
// @Produce      json
// @Param        theme query string true "Theme name"
// @Param        title query string true "Entry title"
// @Success      200 {object} DetailResponse "The entry"
// @Failure      400 {object} respond.ErrorBody "Missing key part"
// @Failure      404 {object} respond.ErrorBody "No entry with this key"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/entry/by-theme [get]
func (h DetailByThemeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	e, err := h.Svc.EntryByTheme(r.Context(), q.Get("theme"), q.Get("title"))
	if err != nil {
		respondLookupError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, DetailResponse{Data: FromEntity(e)})
}

type DetailByTitleHandler struct{ Svc *browseUC.Service }

// ServeHTTP looks up one entry by title alone.
// @Summary      Get entry by title
// @Description  Returns the first entry matching the title across all channels and themes.
// @Tags         entries
// @Produce      json
// @Param        title query string true "Entry title"
// @Success      200 {object} DetailResponse "The entry"
// @Failure      400 {object} respond.ErrorBody "Missing title"
// @Failure      404 {object} respond.ErrorBody "No entry with this title"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/entry/by-title [get]
func (h DetailByTitleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e, err := h.Svc.EntryByTitle(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		respondLookupError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, DetailResponse{Data: FromEntity(e)})
}

// respondLookupError maps lookup failures onto the error envelope: bad
// key parts are 400, a clean miss is 404, everything else is masked as 500.
func respondLookupError(w http.ResponseWriter, err error) {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, err)
	case errors.Is(err, browseUC.ErrEntryNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
	}
}
