package entry

import (
	"errors"
	"net/http"

	"kuckmal/internal/domain/entity"
	"kuckmal/internal/handler/http/respond"
	browseUC "kuckmal/internal/usecase/browse"
)

type DeleteHandler struct{ Svc *browseUC.Service }

// ServeHTTP deletes entries, either the whole catalog or one channel.
// @Summary      Delete entries
// @Description  Without a channel parameter the whole catalog is wiped. With one, only that channel's entries go.
// @Tags         entries
// @Security     BearerAuth
// @Produce      json
// @Param        channel query string false "Restrict deletion to one channel"
// @Success      200 {object} DeleteResponse "Rows removed"
// @Failure      400 {object} respond.ErrorBody "Validation error"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      403 {object} respond.ErrorBody "Admin role required"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/entries [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")

	var (
		deleted int64
		err     error
	)
	if channel == "" {
		deleted, err = h.Svc.DeleteAll(r.Context())
	} else {
		deleted, err = h.Svc.DeleteByChannel(r.Context(), channel)
	}
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			respond.Error(w, http.StatusBadRequest, respond.CodeValidation, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	respond.JSON(w, http.StatusOK, DeleteResponse{Deleted: deleted, Channel: channel})
}
