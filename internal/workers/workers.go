package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled in cfg. A zero interval disables a
// worker.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.RetentionInterval > 0 {
		w.workers = append(w.workers, NewRetentionWorker(services.RetentionService, cfg.RetentionInterval, logger))
	}

	logger.Info().Int("count", len(w.workers)).Msg("workers created")

	return w
}

// Run starts every worker and blocks until all of them have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
