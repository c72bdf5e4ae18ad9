package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/models"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.App
		build       models.AppBuildInfo
		wantVersion string
		wantErr     error
	}{
		{
			name:        "configured version",
			cfg:         config.App{Version: "1.0.0"},
			wantVersion: "1.0.0",
		},
		{
			name:        "linked version",
			build:       models.NewAppBuildInfo("v2.1.0", "2026-01-02", "abc123"),
			wantVersion: "v2.1.0",
		},
		{
			name:        "configured version wins",
			cfg:         config.App{Version: "override"},
			build:       models.NewAppBuildInfo("v2.1.0", "", ""),
			wantVersion: "override",
		},
		{
			name:    "no version anywhere",
			build:   models.NewAppBuildInfo("N/A", "N/A", "N/A"),
			wantErr: ErrVersionIsNotSpecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(tt.cfg, tt.build, logger.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, svc.GetAppVersion(context.Background()))
		})
	}
}

// ─────────────────────────────────────────────
// GetBuildInfo
// ─────────────────────────────────────────────

func TestGetBuildInfo_KeepsLinkMetadata(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "3.1.4"}, models.NewAppBuildInfo("", "2026-03-01", "deadbeef"), logger.Nop())
	require.NoError(t, err)

	info := svc.GetBuildInfo(context.Background())
	assert.Equal(t, models.AppBuildInfo{Version: "3.1.4", Date: "2026-03-01", Commit: "deadbeef"}, info)
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}
