package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/merge"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/models"
)

// retentionService drops expired tombstones from basic snapshots that have
// not been pushed to recently. Pushes prune on their own.
type retentionService struct {
	snapshots store.SnapshotRepository

	locks     *KeyLock
	writer    writer
	retention time.Duration

	metrics *metrics.Metrics
	now     func() time.Time
	logger  *logger.Logger
}

func NewRetentionService(storages *store.Storages, cfg config.Services, m *metrics.Metrics, locks *KeyLock, logger *logger.Logger) RetentionService {
	return &retentionService{
		snapshots: storages.SnapshotRepository,
		locks:     locks,
		writer:    newWriter(cfg, m),
		retention: cfg.TombstoneRetention,
		metrics:   m,
		now:       time.Now,
		logger:    logger,
	}
}

// PruneExpiredTombstones visits every basic snapshot. A failure on one user
// is logged and does not stop the sweep; the first such error is returned.
func (s *retentionService) PruneExpiredTombstones(ctx context.Context) (int, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	owners, err := s.snapshots.ListOwners(ctx, models.ChannelBasic)
	if err != nil {
		s.logger.Err(err).Str("func", "*retentionService.PruneExpiredTombstones").Msg("error listing snapshot owners")
		return 0, classifyStoreError(err)
	}

	cutoff := s.now().UnixMilli() - s.retention.Milliseconds()
	total := 0
	var firstErr error
	for _, userID := range owners {
		if ctx.Err() != nil {
			return total, errors.Join(firstErr, ctx.Err())
		}

		n, err := s.pruneUser(ctx, userID, cutoff)
		if err != nil {
			s.logger.Err(err).Str("func", "*retentionService.PruneExpiredTombstones").
				Str("user_id", userID).Msg("error pruning tombstones")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		total += n
	}

	s.metrics.PrunedTombstones(total)

	return total, firstErr
}

func (s *retentionService) pruneUser(ctx context.Context, userID string, cutoff int64) (int, error) {
	unlock, err := s.locks.Lock(ctx, basicKey(userID))
	if err != nil {
		return 0, classifyStoreError(err)
	}
	defer unlock()

	pruned := 0
	err = s.writer.do(ctx, models.ChannelBasic, func(ctx context.Context) error {
		pruned = 0
		stored, err := s.snapshots.Get(ctx, userID, models.ChannelBasic)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		kept := merge.PruneTombstones(stored.Snapshot.DeletedItems, cutoff)
		if len(kept) == len(stored.Snapshot.DeletedItems) {
			return nil
		}

		snap := stored.Snapshot
		snap.DeletedItems = kept
		if _, err = s.snapshots.Put(ctx, userID, models.ChannelBasic, snap, stored.Version); err != nil {
			return err
		}
		pruned = len(stored.Snapshot.DeletedItems) - len(kept)
		return nil
	})

	return pruned, err
}
