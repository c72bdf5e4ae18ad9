// Package http implements the REST transport of the sync server.
//
// It wires the /api/sync routes, account erasure and the version endpoint to
// the service layer. Tracing, access logging, request metrics, compression
// and bearer-token authentication are applied here as chi middleware before
// a request reaches a handler.
package http
