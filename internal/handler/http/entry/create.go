package entry

import (
	"encoding/json"
	"errors"
	"net/http"

	"kuckmal/internal/domain/entity"
	"kuckmal/internal/handler/http/respond"
	browseUC "kuckmal/internal/usecase/browse"
)

type CreateHandler struct{ Svc *browseUC.Service }

// ServeHTTP bulk-inserts entries.
// @Summary      Create entries
// @Description  Inserts a batch of entries. Each entry is validated individually; invalid ones are skipped and reported, never fatal. Existing (channel, theme, title) keys are kept untouched.
// @Tags         entries
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        entries body []DTO true "Entries to insert"
// @Success      201 {object} BatchResponse "Insert report"
// @Failure      400 {object} respond.ErrorBody "Malformed body or empty batch"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      403 {object} respond.ErrorBody "Admin role required"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/entries [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req []DTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation,
			errors.New("request body must be a JSON array of entries"))
		return
	}

	entries := make([]*entity.MediaEntry, 0, len(req))
	for _, d := range req {
		entries = append(entries, toEntity(d))
	}

	result, err := h.Svc.CreateBatch(r.Context(), entries)
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			respond.Error(w, http.StatusBadRequest, respond.CodeValidation, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	respond.JSON(w, http.StatusCreated, BatchResponse{
		Received: result.Received,
		Inserted: result.Inserted,
		Skipped:  result.Skipped,
	})
}

// toEntity maps an incoming DTO to a domain entry. The ID is ignored;
// storage assigns it.
func toEntity(d DTO) *entity.MediaEntry {
	return &entity.MediaEntry{
		Channel:     d.Channel,
		Theme:       d.Theme,
		Title:       d.Title,
		Date:        d.Date,
		Time:        d.Time,
		Duration:    d.Duration,
		SizeMB:      d.SizeMB,
		Description: d.Description,
		URL:         d.URL,
		Website:     d.Website,
		SubtitleURL: d.SubtitleURL,
		URLSmall:    d.URLSmall,
		URLHD:       d.URLHD,
		Timestamp:   d.Timestamp,
		Geo:         d.Geo,
		IsNew:       d.IsNew,
	}
}
