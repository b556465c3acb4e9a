package catalog

import (
	"net/http"

	"kuckmal/internal/handler/http/respond"
	browseUC "kuckmal/internal/usecase/browse"
)

type ChannelsHandler struct{ Svc *browseUC.Service }

// ServeHTTP lists all channels.
// @Summary      List channels
// @Description  Returns all distinct channel names in the catalog, sorted alphabetically.
// @Tags         catalog
// @Produce      json
// @Success      200 {object} ChannelsResponse "Channel names"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/channels [get]
func (h ChannelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	channels, err := h.Svc.Channels(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
		return
	}

	if channels == nil {
		channels = []string{}
	}
	respond.JSON(w, http.StatusOK, ChannelsResponse{
		Data:  channels,
		Count: len(channels),
	})
}
