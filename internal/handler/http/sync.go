package http

import (
	"net/http"

	"github.com/MKhiriev/repertoire-sync/internal/utils"
	"github.com/MKhiriev/repertoire-sync/models"
)

func (h *Handler) pullBasic(w http.ResponseWriter, r *http.Request) {
	userID, req, err := pullRequest(w, r)
	if err != nil {
		writeError(w, r, "*Handler.pullBasic", err)
		return
	}

	resp, err := h.services.SyncService.PullBasic(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, "*Handler.pullBasic", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pushBasic(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.pushBasic", err)
		return
	}

	var req models.BasicPushRequest
	if err = decodeBody(w, r, &req); err != nil {
		writeError(w, r, "*Handler.pushBasic", err)
		return
	}

	resp, err := h.services.SyncService.PushBasic(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, "*Handler.pushBasic", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pullFull(w http.ResponseWriter, r *http.Request) {
	userID, req, err := pullRequest(w, r)
	if err != nil {
		writeError(w, r, "*Handler.pullFull", err)
		return
	}

	resp, err := h.services.SyncService.PullFull(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, "*Handler.pullFull", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pushFull(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.pushFull", err)
		return
	}

	var delta models.Snapshot
	if err = decodeBody(w, r, &delta); err != nil {
		writeError(w, r, "*Handler.pushFull", err)
		return
	}

	resp, err := h.services.SyncService.PushFull(r.Context(), userID, delta)
	if err != nil {
		writeError(w, r, "*Handler.pushFull", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
