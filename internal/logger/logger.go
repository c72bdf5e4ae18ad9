// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger for the repertoire-sync server.
//
// Request-scoped loggers travel in the context: the HTTP trace-id middleware
// attaches one with a trace_id field and every layer below reads it back with
// FromContext, so a single request can be followed across handler, service
// and store log lines.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger on stdout tagged with role.
//
// Entries carry a "role" field, a timestamp and a "func" caller field holding
// the fully-qualified function name. The global level starts at Debug; use
// [SetLevel] to raise it.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

func newLogger(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// SetLevel sets the global level from its name. An empty name is ignored.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}

	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("unknown log level %q: %w", name, err)
	}
	zerolog.SetGlobalLevel(lvl)

	return nil
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. If none is attached,
// zerolog's default context logger is returned, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
