package http

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/service"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/models"
)

// ─────────────────────────────────────────────
// responseWriter
// ─────────────────────────────────────────────

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w *responseWriter)
		wantStatus int
		wantSize   int
	}{
		{
			name:       "nothing written",
			write:      func(*responseWriter) {},
			wantStatus: http.StatusOK,
		},
		{
			name: "implicit 200 on write",
			write: func(w *responseWriter) {
				w.Write([]byte("hello"))
				w.Write([]byte(" world"))
			},
			wantStatus: http.StatusOK,
			wantSize:   11,
		},
		{
			name: "second WriteHeader ignored",
			write: func(w *responseWriter) {
				w.WriteHeader(http.StatusConflict)
				w.WriteHeader(http.StatusOK)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rr}

			tt.write(w)

			assert.Equal(t, tt.wantStatus, w.Status())
			assert.Equal(t, tt.wantSize, w.size)
			assert.Same(t, rr, w.Unwrap())
		})
	}
}

// ─────────────────────────────────────────────
// withLogging
// ─────────────────────────────────────────────

func TestWithLogging_ObservesRoutePattern(t *testing.T) {
	m := metrics.New()
	h := &Handler{metrics: m, logger: logger.Nop()}

	router := chi.NewRouter()
	router.Use(h.withLogging)
	router.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	count, err := testutil.GatherAndCount(m.Registry(), "repertoire_sync_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestWithLogging_NilMetrics(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.withLogging(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, "ok", rr.Body.String())
}

// ─────────────────────────────────────────────
// withGZip
// ─────────────────────────────────────────────

func TestGZip(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})

	t.Run("plain request and response", func(t *testing.T) {
		rr := httptest.NewRecorder()
		withGZip(echo).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("plain")))

		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, "plain", rr.Body.String())
	})

	t.Run("compressed response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("payload"))
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		rr := httptest.NewRecorder()
		withGZip(echo).ServeHTTP(rr, req)

		assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
		assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))
		zr, err := gzip.NewReader(rr.Body)
		require.NoError(t, err)
		got, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(got))
	})

	t.Run("invalid gzip body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()
		withGZip(echo).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid gzip data", errorBody(t, rr))
	})
}

// ─────────────────────────────────────────────
// CheckHTTPMethod
// ─────────────────────────────────────────────

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/sync/basic/push", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodPost, http.StatusAccepted},
		{http.MethodGet, http.StatusNotFound},
		{http.MethodPut, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, "/api/sync/basic/push", nil))
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

// ─────────────────────────────────────────────
// statusFromError
// ─────────────────────────────────────────────

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", fmt.Errorf("%w: %w", service.ErrInvalidRequest, models.ErrDuplicateID), http.StatusBadRequest},
		{"invalid cursor", fmt.Errorf("%w: %w", service.ErrInvalidRequest, service.ErrInvalidCursor), http.StatusBadRequest},
		{"malformed json", fmt.Errorf("%w: %w", ErrInvalidJSON, io.ErrUnexpectedEOF), http.StatusBadRequest},
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized},
		{"no user", ErrNoUserID, http.StatusUnauthorized},
		{"conflict", fmt.Errorf("%w: %w", service.ErrConflict, store.ErrVersionConflict), http.StatusConflict},
		{"store failure", fmt.Errorf("%w: %w", service.ErrStoreFailure, store.ErrExecutingQuery), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
