package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/utils"
	"github.com/MKhiriev/repertoire-sync/models"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultRetryWait      = time.Second
	maxRetryWait          = 10 * time.Second
)

// Config configures [NewHTTPSyncClient].
type Config struct {
	// Address is the server base URL; "host:port" is accepted and treated as
	// plain http.
	Address string

	// RequestTimeout bounds each attempt. Zero selects 15s.
	RequestTimeout time.Duration

	// Retries is how many more times a request answered with 409 or 503 is
	// sent again.
	Retries int

	// RetryWait is the first delay between attempts. Zero selects 1s.
	RetryWait time.Duration
}

type httpSyncClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPSyncClient returns a [SyncClient] talking JSON over HTTP.
// It fails when cfg.Address is empty or is not a valid URL.
func NewHTTPSyncClient(cfg Config, log *logger.Logger) (SyncClient, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter address: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = defaultRetryWait
	}
	if log == nil {
		log = logger.Nop()
	}

	c := &httpSyncClient{client: utils.NewHTTPClient(), logger: log}
	c.client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(maxRetryWait).
		AddRetryCondition(retryable).
		AddRetryHook(func(resp *resty.Response, err error) {
			ev := c.logger.Warn().Str("func", "*httpSyncClient.retry")
			if resp != nil {
				ev = ev.Int("status", resp.StatusCode()).Str("url", resp.Request.URL)
			}
			ev.Err(err).Msg("retrying request")
		})

	return c, nil
}

// retryable reports whether the server asked the client to come back later.
func retryable(resp *resty.Response, _ error) bool {
	if resp == nil {
		return false
	}

	switch resp.StatusCode() {
	case http.StatusConflict, http.StatusServiceUnavailable:
		return true
	}

	return false
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (c *httpSyncClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *httpSyncClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Version calls GET /api/version/. No token is needed.
func (c *httpSyncClient) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version/")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}

	return info, nil
}

// PullBasic calls POST /api/sync/basic/pull.
func (c *httpSyncClient) PullBasic(ctx context.Context, since int64) (*models.BasicData, error) {
	var out models.PullResponse
	if err := c.post(ctx, "/api/sync/basic/pull", pullBody(since), &out); err != nil {
		return nil, fmt.Errorf("pull basic: %w", err)
	}

	return out.Data, nil
}

// PushBasic calls POST /api/sync/basic/push.
func (c *httpSyncClient) PushBasic(ctx context.Context, data models.BasicData) (models.PushResponse, error) {
	var out models.PushResponse
	if err := c.post(ctx, "/api/sync/basic/push", data, &out); err != nil {
		return models.PushResponse{}, fmt.Errorf("push basic: %w", err)
	}

	return out, nil
}

// PullFull calls POST /api/sync/full/pull.
func (c *httpSyncClient) PullFull(ctx context.Context, since int64) (*models.Snapshot, error) {
	var out models.FullPullResponse
	if err := c.post(ctx, "/api/sync/full/pull", pullBody(since), &out); err != nil {
		return nil, fmt.Errorf("pull full: %w", err)
	}

	return out.Data, nil
}

// PushFull calls POST /api/sync/full/push.
func (c *httpSyncClient) PushFull(ctx context.Context, delta models.Snapshot) (models.PushResponse, error) {
	var out models.PushResponse
	if err := c.post(ctx, "/api/sync/full/push", delta, &out); err != nil {
		return models.PushResponse{}, fmt.Errorf("push full: %w", err)
	}

	return out, nil
}

// PullVariants calls POST /api/sync/variants/pull.
func (c *httpSyncClient) PullVariants(ctx context.Context, req models.VariantPullRequest) (models.VariantPage, error) {
	var out models.VariantPage
	if err := c.post(ctx, "/api/sync/variants/pull", req, &out); err != nil {
		return models.VariantPage{}, fmt.Errorf("pull variants: %w", err)
	}

	return out, nil
}

func (c *httpSyncClient) PullAllVariants(ctx context.Context, since int64, batchSize int) ([]models.VariantRecord, error) {
	log := c.logger.With().Str("func", "*httpSyncClient.PullAllVariants").Logger()

	req := models.VariantPullRequest{LastSyncTime: models.NewSyncTime(since), BatchSize: batchSize}
	var records []models.VariantRecord

	for {
		page, err := c.PullVariants(ctx, req)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Variants...)
		log.Debug().Int("batch", len(page.Variants)).Int("total_count", page.TotalCount).Msg("received variants page")

		if !page.HasMore {
			return records, nil
		}
		if page.LastBatchID == "" || page.LastBatchID == req.LastBatchID {
			return nil, fmt.Errorf("pull variants: server reported more pages without a new last_batch_id")
		}
		req.LastBatchID = page.LastBatchID
	}
}

// PushVariants calls POST /api/sync/variants/push.
func (c *httpSyncClient) PushVariants(ctx context.Context, variants []models.VariantSync) (models.SuccessResponse, error) {
	if variants == nil {
		variants = []models.VariantSync{}
	}

	var out models.SuccessResponse
	if err := c.post(ctx, "/api/sync/variants/push", models.VariantPushRequest{Variants: variants}, &out); err != nil {
		return models.SuccessResponse{}, fmt.Errorf("push variants: %w", err)
	}

	return out, nil
}

// DeleteAccount calls DELETE /api/account.
func (c *httpSyncClient) DeleteAccount(ctx context.Context) (models.SuccessResponse, error) {
	var out models.SuccessResponse

	resp, err := c.authedRequest(ctx).
		SetResult(&out).
		Delete("/api/account")
	if err != nil {
		return models.SuccessResponse{}, fmt.Errorf("delete account request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SuccessResponse{}, fmt.Errorf("delete account: %w", err)
	}

	return out, nil
}

func (c *httpSyncClient) post(ctx context.Context, path string, body, result any) error {
	resp, err := c.authedRequest(ctx).
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}

	return mapHTTPError(resp)
}

func (c *httpSyncClient) authedRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func pullBody(since int64) models.PullRequest {
	return models.PullRequest{LastSyncTime: models.NewSyncTime(since)}
}
