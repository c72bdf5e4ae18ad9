package utils

import (
	"github.com/go-resty/resty/v2"
)

const clientUserAgent = "repertoire-sync-client"

// HTTPClient embeds *resty.Client so that the sync client can extend it with
// its own behaviour while keeping every resty method.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client that accepts JSON and
// identifies itself with the sync client user agent.
func NewHTTPClient() *HTTPClient {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", clientUserAgent)

	return &HTTPClient{Client: c}
}
