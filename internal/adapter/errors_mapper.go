package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

type errorBody struct {
	Error string `json:"error"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	msg := errorMessage(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, msg)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), msg)
	}
}

// errorMessage prefers the "error" member of a JSON body and falls back to
// the raw body, then to the status text.
func errorMessage(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))

	var eb errorBody
	if err := json.Unmarshal([]byte(body), &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	if body == "" {
		return http.StatusText(resp.StatusCode())
	}

	return body
}
