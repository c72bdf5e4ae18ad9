package service

import "errors"

// Error kinds reported by the sync services. Handlers map them to HTTP
// status codes; the wrapped cause stays available to [errors.Is].
var (
	// ErrInvalidRequest marks a request that is malformed or violates the
	// protocol. It is always joined with a more specific cause.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnauthorized is returned when the caller cannot be identified.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreFailure is returned when the record store could not complete
	// a read or write. Nothing was persisted by the failed operation.
	ErrStoreFailure = errors.New("record store failure")

	// ErrConflict is returned when a write kept losing optimistic-concurrency
	// races until the retry budget was spent.
	ErrConflict = errors.New("concurrent modification, retry later")

	// ErrInvalidCursor is returned for a last_batch_id that was not issued
	// by this server.
	ErrInvalidCursor = errors.New("invalid last_batch_id")

	// ErrConflictingTokens is returned when a variants pull carries both
	// last_batch_id and offset.
	ErrConflictingTokens = errors.New("last_batch_id and offset are mutually exclusive")

	// ErrInvalidBatchSize is returned for a negative batch_size or offset.
	ErrInvalidBatchSize = errors.New("batch_size and offset must not be negative")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
