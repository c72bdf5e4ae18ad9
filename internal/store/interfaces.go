//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock
package store

import (
	"context"

	"github.com/MKhiriev/repertoire-sync/models"
)

// SnapshotRepository stores one JSON snapshot per (user, channel).
//
// Writes are compare-and-swap on a version counter: Put with
// expectedVersion 0 inserts and fails if a row exists; any other value
// updates only the row still at that version. Both failures are reported as
// [ErrVersionConflict].
type SnapshotRepository interface {
	// Get returns [ErrNotFound] when the user has no snapshot on the channel.
	Get(ctx context.Context, userID string, kind models.Channel) (StoredSnapshot, error)
	// Put returns the version of the written row.
	Put(ctx context.Context, userID string, kind models.Channel, snapshot models.Snapshot, expectedVersion int64) (int64, error)
	// Delete removes the snapshots of every channel of the user. Deleting
	// nothing is not an error.
	Delete(ctx context.Context, userID string) error
	// ListOwners returns the users holding a snapshot on the channel.
	ListOwners(ctx context.Context, kind models.Channel) ([]string, error)
}

// VariantRepository stores one record per (user, variant).
//
// Put and Delete follow the same compare-and-swap rule as
// [SnapshotRepository.Put], using [models.VariantRecord.Version] as the
// expected version.
type VariantRepository interface {
	// Get returns [ErrNotFound] when the variant is not stored.
	Get(ctx context.Context, userID, variantID string) (models.VariantRecord, error)
	// Put returns the version of the written row.
	Put(ctx context.Context, userID string, record models.VariantRecord) (int64, error)
	Delete(ctx context.Context, userID, variantID string, expectedVersion int64) error
	// Page returns up to q.Limit records changed after q.Since in
	// (updated_at, variant_id) order together with the number of all records
	// changed after q.Since. Both are read from one consistent snapshot.
	Page(ctx context.Context, userID string, q models.VariantPageQuery) ([]models.VariantRecord, int, error)
	// DeleteAll removes every variant of the user and returns how many rows
	// were removed.
	DeleteAll(ctx context.Context, userID string) (int64, error)
}

// StoredSnapshot is a snapshot together with its row metadata.
type StoredSnapshot struct {
	Snapshot models.Snapshot
	Version  int64
	// UpdatedAt is the server time of the last write in epoch milliseconds.
	UpdatedAt int64
}

// ErrorClassification tells [DB.fail] whether a driver error is transient.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
