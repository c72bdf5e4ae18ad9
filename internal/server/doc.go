// Package server runs the HTTP transport of the sync server.
//
// It owns the listener lifecycle: startup, and graceful shutdown bounded by
// the configured timeout once the run context is cancelled.
package server
