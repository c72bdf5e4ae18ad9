package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/repertoire-sync/models"
)

type variantKey struct {
	userID    string
	variantID string
}

// MemoryVariantRepository is an in-process [VariantRepository].
type MemoryVariantRepository struct {
	mu   sync.RWMutex
	rows map[variantKey]models.VariantRecord
}

// NewMemoryVariantRepository returns an empty in-memory variant store.
func NewMemoryVariantRepository() *MemoryVariantRepository {
	return &MemoryVariantRepository{rows: make(map[variantKey]models.VariantRecord)}
}

func (r *MemoryVariantRepository) Get(ctx context.Context, userID, variantID string) (models.VariantRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.VariantRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.rows[variantKey{userID, variantID}]
	if !ok {
		return models.VariantRecord{}, ErrNotFound
	}

	return cloneRecord(rec), nil
}

func (r *MemoryVariantRepository) Put(ctx context.Context, userID string, record models.VariantRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := variantKey{userID, record.VariantID}
	stored, exists := r.rows[key]
	if exists != (record.Version != 0) || stored.Version != record.Version {
		return 0, ErrVersionConflict
	}

	rec := cloneRecord(record)
	rec.Version = record.Version + 1
	r.rows[key] = rec

	return rec.Version, nil
}

func (r *MemoryVariantRepository) Delete(ctx context.Context, userID, variantID string, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := variantKey{userID, variantID}
	stored, exists := r.rows[key]
	if !exists || stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	delete(r.rows, key)

	return nil
}

// Page reads the count and the page under one read lock.
func (r *MemoryVariantRepository) Page(ctx context.Context, userID string, q models.VariantPageQuery) ([]models.VariantRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	changed := make([]models.VariantRecord, 0)
	for key, rec := range r.rows {
		if key.userID == userID && rec.UpdatedAt > q.Since {
			changed = append(changed, rec)
		}
	}
	slices.SortFunc(changed, func(a, b models.VariantRecord) int {
		return cmp.Or(cmp.Compare(a.UpdatedAt, b.UpdatedAt), cmp.Compare(a.VariantID, b.VariantID))
	})
	total := len(changed)

	switch {
	case q.After != nil:
		start, _ := slices.BinarySearchFunc(changed, *q.After, func(rec models.VariantRecord, c models.VariantCursor) int {
			if !c.Before(rec.Cursor()) {
				return -1
			}
			return 1
		})
		changed = changed[start:]
	case q.Offset > 0:
		changed = changed[min(q.Offset, len(changed)):]
	}
	if q.Limit > 0 && len(changed) > q.Limit {
		changed = changed[:q.Limit]
	}

	page := make([]models.VariantRecord, len(changed))
	for i, rec := range changed {
		page[i] = cloneRecord(rec)
	}

	return page, total, nil
}

func (r *MemoryVariantRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for key := range r.rows {
		if key.userID == userID {
			delete(r.rows, key)
			n++
		}
	}

	return n, nil
}

func cloneRecord(rec models.VariantRecord) models.VariantRecord {
	out := rec
	out.Variant = rec.Variant.Clone()
	out.Moves = make([]models.Entity, len(rec.Moves))
	for i, m := range rec.Moves {
		out.Moves[i] = m.Clone()
	}

	return out
}
