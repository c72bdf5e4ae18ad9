package service

import (
	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/models"
)

type Services struct {
	AuthService      AuthService
	SyncService      SyncService
	VariantService   VariantService
	AccountService   AccountService
	RetentionService RetentionService
	AppInfoService   AppInfoService
}

// NewServices wires every service to one set of storages. All of them share
// a single key lock so that writes to the same record serialize across
// channels.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	locks := NewKeyLock()
	syncService := NewSyncValidationService(m).Wrap(NewSyncService(storages, cfg.Services, m, locks, logger))

	return &Services{
		AuthService:      NewAuthService(cfg.App, logger),
		SyncService:      syncService,
		VariantService:   NewVariantService(storages, cfg.Services, m, locks, logger),
		AccountService:   NewAccountService(storages, cfg.Services, m, locks, logger),
		RetentionService: NewRetentionService(storages, cfg.Services, m, locks, logger),
		AppInfoService:   appInfo,
	}, nil
}
