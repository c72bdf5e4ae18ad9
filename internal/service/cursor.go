package service

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/repertoire-sync/models"
)

// encodeCursor renders a keyset position as an opaque last_batch_id.
func encodeCursor(c models.VariantCursor) string {
	raw := strconv.FormatInt(c.UpdatedAt, 10) + ":" + c.VariantID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(token string) (models.VariantCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return models.VariantCursor{}, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}

	ts, id, ok := strings.Cut(string(raw), ":")
	if !ok || id == "" {
		return models.VariantCursor{}, ErrInvalidCursor
	}
	updatedAt, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return models.VariantCursor{}, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}

	return models.VariantCursor{UpdatedAt: updatedAt, VariantID: id}, nil
}
