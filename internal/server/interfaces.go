package server

import "context"

// Server defines the lifecycle of the transport servers managed by this
// package.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns an error only if serving failed.
	RunServer(ctx context.Context) error
}
