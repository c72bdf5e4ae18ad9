package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/models"
)

// SyncValidationService rejects malformed requests before they reach the
// merge engine. Every rejection is wrapped with [ErrInvalidRequest].
type SyncValidationService struct {
	inner   SyncService
	metrics *metrics.Metrics
}

func NewSyncValidationService(m *metrics.Metrics) SyncServiceWrapper {
	return &SyncValidationService{metrics: m}
}

func (v *SyncValidationService) Wrap(inner SyncService) SyncService {
	v.inner = inner
	return v
}

func (v *SyncValidationService) PullBasic(ctx context.Context, userID string, req models.PullRequest) (models.PullResponse, error) {
	if err := v.check(ctx, models.ChannelBasic, "pull", userID, req.Validate()); err != nil {
		return models.PullResponse{}, err
	}

	return v.inner.PullBasic(ctx, userID, req)
}

func (v *SyncValidationService) PushBasic(ctx context.Context, userID string, req models.BasicPushRequest) (models.PushResponse, error) {
	if err := v.check(ctx, models.ChannelBasic, "push", userID, req.Snapshot().Validate()); err != nil {
		return models.PushResponse{}, err
	}

	return v.inner.PushBasic(ctx, userID, req)
}

func (v *SyncValidationService) PullFull(ctx context.Context, userID string, req models.PullRequest) (models.FullPullResponse, error) {
	if err := v.check(ctx, models.ChannelFull, "pull", userID, req.Validate()); err != nil {
		return models.FullPullResponse{}, err
	}

	return v.inner.PullFull(ctx, userID, req)
}

func (v *SyncValidationService) PushFull(ctx context.Context, userID string, delta models.Snapshot) (models.PushResponse, error) {
	if err := v.check(ctx, models.ChannelFull, "push", userID, delta.Validate()); err != nil {
		return models.PushResponse{}, err
	}

	return v.inner.PushFull(ctx, userID, delta)
}

func (v *SyncValidationService) check(ctx context.Context, channel models.Channel, direction, userID string, invalid error) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if invalid == nil {
		return nil
	}

	logger.FromContext(ctx).Debug().Err(invalid).Str("channel", string(channel)).
		Str("direction", direction).Msg("request rejected")
	v.metrics.SyncRequest(channel, direction, metrics.OutcomeInvalid)

	return fmt.Errorf("%w: %w", ErrInvalidRequest, invalid)
}
