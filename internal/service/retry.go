package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/models"
)

// writer runs store operations with bounded exponential backoff. Version
// conflicts and transient driver errors are retried; anything else fails
// immediately.
type writer struct {
	attempts  uint64
	baseDelay time.Duration
	metrics   *metrics.Metrics
}

func newWriter(cfg config.Services, m *metrics.Metrics) writer {
	attempts := cfg.WriteRetries
	if attempts == 0 {
		attempts = 1
	}
	delay := cfg.RetryBaseDelay
	if delay <= 0 {
		delay = time.Millisecond
	}

	return writer{attempts: attempts, baseDelay: delay, metrics: m}
}

func (w writer) do(ctx context.Context, channel models.Channel, op func(ctx context.Context) error) error {
	backoff := retry.NewExponential(w.baseDelay)
	backoff = retry.WithJitterPercent(20, backoff)
	backoff = retry.WithMaxRetries(w.attempts-1, backoff)

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := op(ctx)
		if err != nil && store.IsRetryable(err) {
			logger.FromContext(ctx).Debug().Err(err).Str("func", "writer.do").
				Str("channel", string(channel)).Int("attempt", attempt).Msg("retrying store write")
			w.metrics.WriteRetry(channel)
			return retry.RetryableError(err)
		}
		return err
	})

	return classifyStoreError(err)
}

// classifyStoreError maps store failures onto the service error kinds and
// passes every other error through.
func classifyStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrStoreFailure), errors.Is(err, ErrConflict):
		return err
	case errors.Is(err, store.ErrVersionConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
}
