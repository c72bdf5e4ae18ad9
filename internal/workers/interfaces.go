// Package workers runs the background jobs of the sync server.
// It defines the Worker interface and a Workers aggregate that runs every
// configured worker until the context is cancelled.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
