package http

import (
	"net/http"

	"github.com/MKhiriev/repertoire-sync/internal/utils"
	"github.com/MKhiriev/repertoire-sync/models"
)

// pullVariants answers with the page object itself, not wrapped in "data".
func (h *Handler) pullVariants(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.pullVariants", err)
		return
	}

	var req models.VariantPullRequest
	if err = decodeBody(w, r, &req); err != nil {
		writeError(w, r, "*Handler.pullVariants", err)
		return
	}

	page, err := h.services.VariantService.PullVariants(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, "*Handler.pullVariants", err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) pushVariants(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.pushVariants", err)
		return
	}

	var req models.VariantPushRequest
	if err = decodeBody(w, r, &req); err != nil {
		writeError(w, r, "*Handler.pushVariants", err)
		return
	}

	resp, err := h.services.VariantService.PushVariants(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, "*Handler.pushVariants", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
