package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/service"
)

// RetentionWorker periodically drops expired tombstones from snapshots that
// are not being pushed to.
type RetentionWorker struct {
	retention service.RetentionService
	interval  time.Duration

	logger *logger.Logger
}

func NewRetentionWorker(retention service.RetentionService, interval time.Duration, logger *logger.Logger) *RetentionWorker {
	return &RetentionWorker{
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

func (w *RetentionWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("retention worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("retention worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RetentionWorker) sweep(ctx context.Context) {
	start := time.Now()

	pruned, err := w.retention.PruneExpiredTombstones(ctx)
	if err != nil {
		w.logger.Err(err).Str("func", "*RetentionWorker.sweep").Int("pruned", pruned).Msg("tombstone sweep failed")
		return
	}

	w.logger.Debug().Int("pruned", pruned).Dur("duration", time.Since(start)).Msg("tombstone sweep finished")
}
