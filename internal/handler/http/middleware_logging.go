package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
)

// unmatchedRoute labels requests that matched no route, keeping the metric
// cardinality bounded.
const unmatchedRoute = "unmatched"

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.metrics.ObserveRequest(method, route, lw.Status(), duration)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Str("route", route).
			Int("status", lw.Status()).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()
	})
}
