package service

import (
	"context"
	"time"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/models"
)

const accountDeletedMessage = "User data successfully deleted"

type accountService struct {
	snapshots store.SnapshotRepository
	variants  store.VariantRepository

	locks   *KeyLock
	writer  writer
	timeout time.Duration

	logger *logger.Logger
}

func NewAccountService(storages *store.Storages, cfg config.Services, m *metrics.Metrics, locks *KeyLock, logger *logger.Logger) AccountService {
	return &accountService{
		snapshots: storages.SnapshotRepository,
		variants:  storages.VariantRepository,
		locks:     locks,
		writer:    newWriter(cfg, m),
		timeout:   cfg.SyncTimeout,
		logger:    logger,
	}
}

// DeleteAccount removes every snapshot and variant of the user. Deleting an
// account with no data succeeds.
func (s *accountService) DeleteAccount(ctx context.Context, userID string) (models.SuccessResponse, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return models.SuccessResponse{}, ErrUnauthorized
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	// concurrent pushes of the same user would recreate records
	for _, key := range []string{basicKey(userID), fullKey(userID), variantsKey(userID)} {
		unlock, err := s.locks.Lock(ctx, key)
		if err != nil {
			return models.SuccessResponse{}, classifyStoreError(err)
		}
		defer unlock()
	}

	var removed int64
	err := s.writer.do(ctx, models.ChannelBasic, func(ctx context.Context) error {
		if err := s.snapshots.Delete(ctx, userID); err != nil {
			return err
		}

		n, err := s.variants.DeleteAll(ctx, userID)
		removed = n
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*accountService.DeleteAccount").Msg("error deleting account data")
		return models.SuccessResponse{}, err
	}

	log.Info().Str("func", "*accountService.DeleteAccount").Int64("variants", removed).Msg("account data deleted")

	return models.SuccessResponse{Success: true, Message: accountDeletedMessage}, nil
}
