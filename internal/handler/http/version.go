package http

import (
	"net/http"

	"github.com/MKhiriev/repertoire-sync/internal/utils"
)

// getServerVersion reports the running build.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetBuildInfo(r.Context())

	utils.WriteJSON(w, info, http.StatusOK)
}
