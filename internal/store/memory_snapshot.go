package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/repertoire-sync/models"
)

type snapshotKey struct {
	userID string
	kind   models.Channel
}

// MemorySnapshotRepository is an in-process [SnapshotRepository]. Stored
// snapshots are deep-copied on the way in and out.
type MemorySnapshotRepository struct {
	mu   sync.RWMutex
	rows map[snapshotKey]StoredSnapshot
	now  func() int64
}

// NewMemorySnapshotRepository returns an empty in-memory snapshot store.
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{rows: make(map[snapshotKey]StoredSnapshot), now: unixMilli}
}

func (r *MemorySnapshotRepository) Get(ctx context.Context, userID string, kind models.Channel) (StoredSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return StoredSnapshot{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[snapshotKey{userID, kind}]
	if !ok {
		return StoredSnapshot{}, ErrNotFound
	}
	row.Snapshot = row.Snapshot.Clone()

	return row, nil
}

func (r *MemorySnapshotRepository) Put(ctx context.Context, userID string, kind models.Channel, snapshot models.Snapshot, expectedVersion int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := snapshotKey{userID, kind}
	row, exists := r.rows[key]
	if exists != (expectedVersion != 0) || row.Version != expectedVersion {
		return 0, ErrVersionConflict
	}

	stored := snapshot.Clone()
	stored.Normalize()
	r.rows[key] = StoredSnapshot{Snapshot: stored, Version: expectedVersion + 1, UpdatedAt: r.now()}

	return expectedVersion + 1, nil
}

func (r *MemorySnapshotRepository) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.rows {
		if key.userID == userID {
			delete(r.rows, key)
		}
	}

	return nil
}

func (r *MemorySnapshotRepository) ListOwners(ctx context.Context, kind models.Channel) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	owners := make([]string, 0)
	for key := range r.rows {
		if key.kind == kind {
			owners = append(owners, key.userID)
		}
	}
	slices.Sort(owners)

	return owners, nil
}
