package http

import (
	"net/http"

	"github.com/MKhiriev/repertoire-sync/internal/utils"
)

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteAccount", err)
		return
	}

	resp, err := h.services.AccountService.DeleteAccount(r.Context(), userID)
	if err != nil {
		writeError(w, r, "*Handler.deleteAccount", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
