package http

import (
	"time"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/service"
)

// maxRequestBody bounds a decoded request body. Full pushes of large
// repertoires are the biggest legitimate payloads.
const maxRequestBody = 32 << 20

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		metrics:        m,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
