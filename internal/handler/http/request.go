package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/repertoire-sync/internal/utils"
	"github.com/MKhiriev/repertoire-sync/models"
)

// decodeBody reads one JSON value from the request body. Entity decoding
// failures keep their model error so the client learns which record is
// malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func userIDFromRequest(r *http.Request) (string, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return "", ErrNoUserID
	}
	return userID, nil
}

// pullRequest decodes the body shared by the basic and full pulls.
func pullRequest(w http.ResponseWriter, r *http.Request) (string, models.PullRequest, error) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		return "", models.PullRequest{}, err
	}

	var req models.PullRequest
	if err = decodeBody(w, r, &req); err != nil {
		return "", models.PullRequest{}, err
	}

	return userID, req, nil
}
