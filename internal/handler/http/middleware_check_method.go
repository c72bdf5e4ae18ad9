// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A request whose path matches a route but whose method does not is answered
// with 404 instead of chi's 405, so unsupported methods do not reveal which
// routes exist. Only exact route patterns are compared.
//
//	router := chi.NewRouter()
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var found chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				found = route
				break
			}
		}

		if _, ok := found.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
