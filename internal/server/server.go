package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/handler"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type server struct {
	httpServer      *httpServer
	address         string
	shutdownTimeout time.Duration

	// ready, when set, receives the bound address once the listener is open.
	ready chan<- string

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		address:         cfg.HTTPAddress,
		shutdownTimeout: timeout,
		logger:          logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		s.logger.Err(err).Str("func", "*server.RunServer").Msg("error opening listener")
		return err
	}
	if s.ready != nil {
		s.ready <- listener.Addr().String()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve(listener)
	}()

	select {
	case err = <-serveErr:
		return err
	case <-ctx.Done():
	}

	// the parent context is already cancelled
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	err = errors.Join(s.httpServer.shutdown(shutdownCtx), <-serveErr)
	if err == nil {
		s.logger.Info().Msg("server Shutdown gracefully")
	}

	return err
}
