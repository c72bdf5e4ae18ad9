package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/repertoire-sync/internal/utils"
)

// auth resolves the bearer token of the request to a user id with
// [service.AuthService.Verify] and stores the id in the request context.
// Requests without a valid token are answered with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, "*Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		userID, err := h.services.AuthService.Verify(ctx, tokenString)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, userID)))
	})
}
