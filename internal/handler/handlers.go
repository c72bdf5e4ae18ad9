package handler

import (
	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/handler/http"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, m, cfg, logger)}, nil
}
