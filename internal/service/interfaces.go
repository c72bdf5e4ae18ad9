//go:generate mockgen -source=interfaces.go -destination=../handler/http/services_mock_test.go -package=http
package service

import (
	"context"

	"github.com/MKhiriev/repertoire-sync/models"
)

// AuthService resolves bearer tokens to user identities.
type AuthService interface {
	// Verify returns the user id carried by token or [ErrUnauthorized].
	Verify(ctx context.Context, token string) (string, error)
}

// SyncService runs the single-document channels: basic (openings, chapters,
// settings, tombstones) and full (everything, variants and moves included).
type SyncService interface {
	PullBasic(ctx context.Context, userID string, req models.PullRequest) (models.PullResponse, error)
	PushBasic(ctx context.Context, userID string, req models.BasicPushRequest) (models.PushResponse, error)

	PullFull(ctx context.Context, userID string, req models.PullRequest) (models.FullPullResponse, error)
	PushFull(ctx context.Context, userID string, delta models.Snapshot) (models.PushResponse, error)
}

// VariantService runs the batched variants channel.
type VariantService interface {
	PullVariants(ctx context.Context, userID string, req models.VariantPullRequest) (models.VariantPage, error)
	PushVariants(ctx context.Context, userID string, req models.VariantPushRequest) (models.SuccessResponse, error)
}

// AccountService erases everything stored for a user.
type AccountService interface {
	DeleteAccount(ctx context.Context, userID string) (models.SuccessResponse, error)
}

// RetentionService removes expired tombstones from stored basic snapshots.
type RetentionService interface {
	// PruneExpiredTombstones returns the number of tombstones removed.
	PruneExpiredTombstones(ctx context.Context) (int, error)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// SyncServiceWrapper defines middleware composition for SyncService.
// Implementations wrap an existing SyncService to add behavior such as
// validation.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}
