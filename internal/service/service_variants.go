package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/models"
)

// variantService implements [VariantService]. Variants are stored one record
// per (user, variant) together with their complete move list.
type variantService struct {
	variants  store.VariantRepository
	snapshots store.SnapshotRepository

	locks  *KeyLock
	writer writer

	timeout      time.Duration
	defaultBatch int
	maxBatch     int

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewVariantService(storages *store.Storages, cfg config.Services, m *metrics.Metrics, locks *KeyLock, logger *logger.Logger) VariantService {
	return &variantService{
		variants:     storages.VariantRepository,
		snapshots:    storages.SnapshotRepository,
		locks:        locks,
		writer:       newWriter(cfg, m),
		timeout:      cfg.SyncTimeout,
		defaultBatch: cfg.DefaultBatchSize,
		maxBatch:     cfg.MaxBatchSize,
		metrics:      m,
		logger:       logger,
	}
}

// PullVariants returns one page of records changed after last_sync_time in
// (updated_at, variant_id) order.
//
// has_more is derived by reading one row past the page. The total count and
// the page come from the same store snapshot.
func (s *variantService) PullVariants(ctx context.Context, userID string, req models.VariantPullRequest) (models.VariantPage, error) {
	log := logger.FromContext(ctx)

	q, batch, err := s.pageQuery(req)
	if err != nil {
		log.Debug().Err(err).Str("func", "*variantService.PullVariants").Msg("request rejected")
		s.metrics.SyncRequest(models.ChannelVariants, "pull", metrics.OutcomeInvalid)
		return models.VariantPage{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	records, total, err := s.variants.Page(ctx, userID, q)
	if err != nil {
		log.Err(err).Str("func", "*variantService.PullVariants").Msg("error reading variant page")
		s.metrics.SyncRequest(models.ChannelVariants, "pull", metrics.OutcomeError)
		return models.VariantPage{}, classifyStoreError(err)
	}

	page := models.VariantPage{TotalCount: total, HasMore: len(records) > batch}
	if page.HasMore {
		records = records[:batch]
	}
	page.Variants = records
	if page.Variants == nil {
		page.Variants = []models.VariantRecord{}
	}

	if req.Offset != nil {
		next := *req.Offset + len(records)
		page.NextOffset = &next
	} else if n := len(records); n > 0 {
		page.LastBatchID = encodeCursor(records[n-1].Cursor())
	}

	s.metrics.SyncRequest(models.ChannelVariants, "pull", metrics.OutcomeOK)

	return page, nil
}

func (s *variantService) pageQuery(req models.VariantPullRequest) (models.VariantPageQuery, int, error) {
	if !req.LastSyncTime.Valid {
		return models.VariantPageQuery{}, 0, models.ErrMissingLastSyncTime
	}
	if req.LastBatchID != "" && req.Offset != nil {
		return models.VariantPageQuery{}, 0, ErrConflictingTokens
	}
	if req.BatchSize < 0 || (req.Offset != nil && *req.Offset < 0) {
		return models.VariantPageQuery{}, 0, ErrInvalidBatchSize
	}

	batch := s.batchSize(req.BatchSize)
	q := models.VariantPageQuery{Since: req.LastSyncTime.Millis, Limit: batch + 1}

	switch {
	case req.LastBatchID != "":
		c, err := decodeCursor(req.LastBatchID)
		if err != nil {
			return models.VariantPageQuery{}, 0, err
		}
		q.After = &c
	case req.Offset != nil:
		q.Offset = *req.Offset
	}

	return q, batch, nil
}

// batchSize applies the default to a missing size and caps it at the
// configured maximum.
func (s *variantService) batchSize(requested int) int {
	batch := requested
	if batch == 0 {
		batch = s.defaultBatch
	}
	if s.maxBatch > 0 && batch > s.maxBatch {
		batch = s.maxBatch
	}
	if batch <= 0 {
		batch = 1
	}

	return batch
}

// PushVariants stores each submitted variant with its moves as one unit.
// A variant is written when it is new or strictly newer than the stored
// record, and only if no basic-channel tombstone for it is newer still.
func (s *variantService) PushVariants(ctx context.Context, userID string, req models.VariantPushRequest) (models.SuccessResponse, error) {
	log := logger.FromContext(ctx)

	if err := validateVariantPush(req); err != nil {
		log.Debug().Err(err).Str("func", "*variantService.PushVariants").Msg("request rejected")
		s.metrics.SyncRequest(models.ChannelVariants, "push", metrics.OutcomeInvalid)
		return models.SuccessResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	// account erasure takes the same key
	unlock, err := s.locks.Lock(ctx, variantsKey(userID))
	if err != nil {
		s.metrics.SyncRequest(models.ChannelVariants, "push", metrics.OutcomeError)
		return models.SuccessResponse{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	defer unlock()

	for _, pair := range req.Variants {
		rec := pair.Record()
		if err = s.store(ctx, userID, rec); err != nil {
			log.Err(err).Str("func", "*variantService.PushVariants").
				Str("variant_id", rec.VariantID).Msg("error storing variant")
			s.metrics.SyncRequest(models.ChannelVariants, "push", outcome(err))
			return models.SuccessResponse{}, err
		}
	}

	s.metrics.SyncRequest(models.ChannelVariants, "push", metrics.OutcomeOK)

	return models.SuccessResponse{Success: true}, nil
}

// store writes one record under its (user, variant) lock with
// last-write-wins on updated_at. The basic-channel tombstone is read under
// the same lock that applies it to the variants store, so a deletion saved
// concurrently is either seen here or applied after this write.
func (s *variantService) store(ctx context.Context, userID string, rec models.VariantRecord) error {
	unlock, err := s.locks.Lock(ctx, variantKey(userID, rec.VariantID))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	defer unlock()

	return s.writer.do(ctx, models.ChannelVariants, func(ctx context.Context) error {
		deletedAt, err := s.variantDeletedAt(ctx, userID, rec.VariantID)
		if err != nil {
			return err
		}
		if deletedAt > rec.UpdatedAt {
			s.metrics.Ignored("suppressed", 1)
			return nil
		}

		stored, err := s.variants.Get(ctx, userID, rec.VariantID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			rec.Version = 0
		case err != nil:
			return err
		case rec.UpdatedAt <= stored.UpdatedAt:
			s.metrics.Ignored("stale_upsert", 1)
			return nil
		default:
			rec.Version = stored.Version
		}

		if _, err = s.variants.Put(ctx, userID, rec); err != nil {
			return err
		}
		op := models.OpUpdate
		if rec.Version == 0 {
			op = models.OpInsert
		}
		s.metrics.Changes([]models.Change{{ID: rec.VariantID, Table: models.TableVariants, Op: op}})
		return nil
	})
}

// variantDeletedAt returns the newest basic-channel deletion time of
// variantID, or 0 when it was never deleted.
func (s *variantService) variantDeletedAt(ctx context.Context, userID, variantID string) (int64, error) {
	stored, err := s.snapshots.Get(ctx, userID, models.ChannelBasic)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*variantService.variantDeletedAt").Msg("error loading tombstones")
		return 0, err
	}

	var deletedAt int64
	for _, d := range stored.Snapshot.DeletedItems {
		if d.TableName == models.TableVariants && d.RecordID == variantID && d.UpdatedAt > deletedAt {
			deletedAt = d.UpdatedAt
		}
	}

	return deletedAt, nil
}

func validateVariantPush(req models.VariantPushRequest) error {
	seen := make(map[string]struct{}, len(req.Variants))
	for _, pair := range req.Variants {
		if err := pair.Validate(); err != nil {
			return err
		}
		if _, dup := seen[pair.Variant.ID]; dup {
			return fmt.Errorf("%w: %s/%s", models.ErrDuplicateID, models.TableVariants, pair.Variant.ID)
		}
		seen[pair.Variant.ID] = struct{}{}
	}

	return nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
