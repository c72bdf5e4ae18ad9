package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/merge"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/models"
)

// syncService implements [SyncService] as read-merge-write over one stored
// snapshot per (user, channel).
//
// Each push runs under a per-user in-process lock and writes with a
// compare-and-swap on the row version, retried with backoff, so concurrent
// pushes from several instances still apply every change exactly once.
type syncService struct {
	snapshots store.SnapshotRepository
	variants  store.VariantRepository

	locks  *KeyLock
	writer writer

	timeout   time.Duration
	retention time.Duration

	metrics *metrics.Metrics
	now     func() time.Time
	logger  *logger.Logger
}

// NewSyncService builds the basic and full channel service.
func NewSyncService(storages *store.Storages, cfg config.Services, m *metrics.Metrics, locks *KeyLock, logger *logger.Logger) SyncService {
	return &syncService{
		snapshots: storages.SnapshotRepository,
		variants:  storages.VariantRepository,
		locks:     locks,
		writer:    newWriter(cfg, m),
		timeout:   cfg.SyncTimeout,
		retention: cfg.TombstoneRetention,
		metrics:   m,
		now:       time.Now,
		logger:    logger,
	}
}

// PullBasic returns basic entities and tombstones changed after
// last_sync_time, or nil data when the user never pushed.
func (s *syncService) PullBasic(ctx context.Context, userID string, req models.PullRequest) (models.PullResponse, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	snap, err := s.load(ctx, userID, models.ChannelBasic)
	if err != nil {
		s.metrics.SyncRequest(models.ChannelBasic, "pull", metrics.OutcomeError)
		return models.PullResponse{}, err
	}
	s.metrics.SyncRequest(models.ChannelBasic, "pull", metrics.OutcomeOK)
	if snap == nil {
		return models.PullResponse{}, nil
	}

	if s.retention > 0 {
		snap.DeletedItems = merge.PruneTombstones(snap.DeletedItems, s.cutoff())
	}
	data := snap.FilterSince(req.LastSyncTime.Millis).Basic()

	return models.PullResponse{Data: &data}, nil
}

// PushBasic merges a basic delta. Tombstones for variants are also applied
// to the variants channel store.
//
// The basic snapshot is committed before the variant deletions run, so a
// failed deletion returns an error with the snapshot already saved. The
// stored tombstone keeps the variant from being written again, and
// resubmitting the same delta finishes the deletion; the changes of the
// first attempt are then not listed again and reach the client on pull.
func (s *syncService) PushBasic(ctx context.Context, userID string, req models.BasicPushRequest) (models.PushResponse, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.push(ctx, userID, models.ChannelBasic, req.Snapshot(), s.retention)
	if err != nil {
		return models.PushResponse{}, err
	}

	deleted, err := s.deleteVariants(ctx, userID, req.DeletedItems)
	if err != nil {
		s.metrics.SyncRequest(models.ChannelBasic, "push", outcome(err))
		return models.PushResponse{}, err
	}
	s.metrics.Changes(deleted)
	s.metrics.SyncRequest(models.ChannelBasic, "push", metrics.OutcomeOK)

	return pushResponse(res, deleted), nil
}

// PullFull returns the whole dataset changed after last_sync_time. Moves are
// returned only for returned variants.
func (s *syncService) PullFull(ctx context.Context, userID string, req models.PullRequest) (models.FullPullResponse, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	snap, err := s.load(ctx, userID, models.ChannelFull)
	if err != nil {
		s.metrics.SyncRequest(models.ChannelFull, "pull", metrics.OutcomeError)
		return models.FullPullResponse{}, err
	}
	s.metrics.SyncRequest(models.ChannelFull, "pull", metrics.OutcomeOK)
	if snap == nil {
		return models.FullPullResponse{}, nil
	}

	data := snap.FilterSince(req.LastSyncTime.Millis)

	return models.FullPullResponse{Data: &data}, nil
}

// PushFull merges a full delta. Tombstones are kept without expiry.
func (s *syncService) PushFull(ctx context.Context, userID string, delta models.Snapshot) (models.PushResponse, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.push(ctx, userID, models.ChannelFull, delta, 0)
	if err != nil {
		return models.PushResponse{}, err
	}
	s.metrics.SyncRequest(models.ChannelFull, "push", metrics.OutcomeOK)

	return pushResponse(res, nil), nil
}

func (s *syncService) load(ctx context.Context, userID string, channel models.Channel) (*models.Snapshot, error) {
	stored, err := s.snapshots.Get(ctx, userID, channel)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*syncService.load").
			Str("channel", string(channel)).Msg("error loading snapshot")
		return nil, classifyStoreError(err)
	}

	return &stored.Snapshot, nil
}

// push runs read-merge-write until the compare-and-swap succeeds. A failed
// attempt persists nothing.
func (s *syncService) push(ctx context.Context, userID string, channel models.Channel, delta models.Snapshot, retention time.Duration) (merge.Result, error) {
	log := logger.FromContext(ctx)

	unlock, err := s.locks.Lock(ctx, channelKey(channel, userID))
	if err != nil {
		s.metrics.SyncRequest(channel, "push", metrics.OutcomeError)
		return merge.Result{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	defer unlock()

	var res merge.Result
	err = s.writer.do(ctx, channel, func(ctx context.Context) error {
		var (
			current *models.Snapshot
			version int64
		)
		stored, err := s.snapshots.Get(ctx, userID, channel)
		switch {
		case err == nil:
			current, version = &stored.Snapshot, stored.Version
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		res = merge.Merge(current, delta, merge.Options{
			Now:                s.now().UnixMilli(),
			TombstoneRetention: retention,
		})

		_, err = s.snapshots.Put(ctx, userID, channel, res.Snapshot, version)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*syncService.push").Str("channel", string(channel)).Msg("push failed")
		s.metrics.SyncRequest(channel, "push", outcome(err))
		return merge.Result{}, err
	}

	s.observe(ctx, channel, res)

	return res, nil
}

// deleteVariants applies variant tombstones to the variants store with
// last-write-wins against the stored record.
func (s *syncService) deleteVariants(ctx context.Context, userID string, tombstones []models.DeletedItem) ([]models.Change, error) {
	deleted := make([]models.Change, 0)

	for _, d := range tombstones {
		if d.TableName != models.TableVariants {
			continue
		}

		removed, err := s.deleteVariant(ctx, userID, d)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*syncService.deleteVariants").
				Str("variant_id", d.RecordID).Msg("error applying variant tombstone")
			return nil, err
		}
		if removed {
			deleted = append(deleted, models.Change{ID: d.RecordID, Table: models.TableVariants, Op: models.OpDelete})
		}
	}

	return deleted, nil
}

func (s *syncService) deleteVariant(ctx context.Context, userID string, d models.DeletedItem) (bool, error) {
	unlock, err := s.locks.Lock(ctx, variantKey(userID, d.RecordID))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	defer unlock()

	removed := false
	err = s.writer.do(ctx, models.ChannelVariants, func(ctx context.Context) error {
		removed = false
		rec, err := s.variants.Get(ctx, userID, d.RecordID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if d.UpdatedAt <= rec.UpdatedAt {
			s.metrics.Ignored("stale_delete", 1)
			return nil
		}

		if err = s.variants.Delete(ctx, userID, d.RecordID, rec.Version); err != nil {
			return err
		}
		removed = true
		return nil
	})

	return removed, err
}

func (s *syncService) observe(ctx context.Context, channel models.Channel, res merge.Result) {
	st := res.Stats
	logger.FromContext(ctx).Debug().
		Str("channel", string(channel)).
		Bool("created", res.Created).
		Int("inserted", st.Inserted).
		Int("updated", st.Updated).
		Int("deleted", st.Deleted).
		Int("stale_upserts", st.StaleUpserts).
		Int("stale_deletes", st.StaleDeletes).
		Int("missing_targets", st.MissingTargets).
		Int("suppressed", st.Suppressed).
		Int("pruned_tombstones", st.PrunedTombstones).
		Int("orphan_moves", st.OrphanMoves).
		Msg("merge applied")

	s.metrics.Changes(res.Changes)
	s.metrics.Ignored("stale_upsert", st.StaleUpserts)
	s.metrics.Ignored("stale_delete", st.StaleDeletes)
	s.metrics.Ignored("missing_target", st.MissingTargets)
	s.metrics.Ignored("suppressed", st.Suppressed)
	s.metrics.Ignored("orphan_move", st.OrphanMoves)
	s.metrics.PrunedTombstones(st.PrunedTombstones)
}

func (s *syncService) cutoff() int64 {
	return s.now().UnixMilli() - s.retention.Milliseconds()
}

func pushResponse(res merge.Result, variantChanges []models.Change) models.PushResponse {
	op := models.PushUpdate
	if res.Created {
		op = models.PushInsert
	}

	items := make([]models.Change, 0, len(variantChanges)+len(res.Changes))
	items = append(items, variantChanges...)
	items = append(items, res.Changes...)

	return models.PushResponse{Success: true, Operation: op, UpdateItems: items}
}

func channelKey(channel models.Channel, userID string) string {
	if channel == models.ChannelFull {
		return fullKey(userID)
	}
	return basicKey(userID)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrInvalidRequest):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	}
	return metrics.OutcomeError
}
