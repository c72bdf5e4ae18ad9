package service

import (
	"context"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/models"
)

// appInfoService reports the running build. The configured version takes
// precedence over the one baked in at link time.
type appInfoService struct {
	info models.AppBuildInfo

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version != "" {
		build.Version = cfg.Version
	}
	if build.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{info: build, logger: logger}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.info
}
