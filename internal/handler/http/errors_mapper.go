package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/service"
	"github.com/MKhiriev/repertoire-sync/internal/utils"
	"github.com/MKhiriev/repertoire-sync/models"
)

// retryAfterSeconds is advertised on responses the client should repeat.
const retryAfterSeconds = "1"

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrNoUserID:                   http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,

	service.ErrUnauthorized:      http.StatusUnauthorized,
	service.ErrInvalidRequest:    http.StatusBadRequest,
	service.ErrInvalidCursor:     http.StatusBadRequest,
	service.ErrConflictingTokens: http.StatusBadRequest,
	service.ErrInvalidBatchSize:  http.StatusBadRequest,
	service.ErrConflict:          http.StatusConflict,
	service.ErrStoreFailure:      http.StatusServiceUnavailable,

	models.ErrMalformedEntity:     http.StatusBadRequest,
	models.ErrUnknownTable:        http.StatusBadRequest,
	models.ErrDuplicateID:         http.StatusBadRequest,
	models.ErrMissingLastSyncTime: http.StatusBadRequest,
	models.ErrInvalidSyncTime:     http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with {"error": ...}. Server-side failures
// are reported by status text only.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	message := err.Error()
	switch {
	case status >= http.StatusInternalServerError:
		log.Err(err).Str("func", fn).Int("status", status).Msg("request failed")
		message = http.StatusText(status)
	default:
		log.Warn().Err(err).Str("func", fn).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusServiceUnavailable || status == http.StatusConflict {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}

	utils.WriteError(w, message, status)
}
