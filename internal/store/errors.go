package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the requested snapshot or variant record
	// does not exist.
	ErrNotFound = errors.New("record was not found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the row was written by someone else since it was read, or it appeared
	// between the read and an insert.
	ErrVersionConflict = errors.New("record version conflict occurred")

	// ErrTransient marks failures the driver reports as temporary
	// (connection loss, serialization failure, busy database). It is always
	// joined with one of the low-level errors below.
	ErrTransient = errors.New("transient store failure")

	// ErrUnsupportedDriver is returned by [NewStorages] for unknown drivers.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingPayload is returned when a stored JSON document cannot be
	// encoded or decoded.
	ErrEncodingPayload = errors.New("failed to encode payload")
)

// IsRetryable reports whether err is worth another attempt: a lost
// compare-and-swap or a transient driver failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrTransient)
}
