package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		if h.metrics != nil {
			r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
		}
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/sync/basic/pull", h.pullBasic)
		r.Post("/api/sync/basic/push", h.pushBasic)
		r.Post("/api/sync/full/pull", h.pullFull)
		r.Post("/api/sync/full/push", h.pushFull)
		r.Post("/api/sync/variants/pull", h.pullVariants)
		r.Post("/api/sync/variants/push", h.pushVariants)

		r.Delete("/api/account", h.deleteAccount)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
