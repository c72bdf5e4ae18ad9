package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
)

const readHeaderTimeout = 10 * time.Second

type httpServer struct {
	server *http.Server

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// serve blocks until the server stops. A graceful shutdown is not an error.
func (h *httpServer) serve(l net.Listener) error {
	h.logger.Info().Str("address", l.Addr().String()).Msg("Launching HTTP server")
	if err := h.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Str("func", "*httpServer.serve").Msg("HTTP server stopped")
		return err
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP server Shutdown")
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Str("func", "*httpServer.shutdown").Msg("error shutting down HTTP server")
		return err
	}
	return nil
}
