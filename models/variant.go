// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// VariantRecord is the stored unit of the variants channel: one variant and
// every move that belongs to it, kept per (user, variant).
type VariantRecord struct {
	VariantID string   `json:"variant_id"`
	Variant   Entity   `json:"variant"`
	Moves     []Entity `json:"moves"`
	UpdatedAt int64    `json:"updated_at"`

	// Version is the optimistic-concurrency counter of the stored row.
	Version int64 `json:"-"`
}

// GetID returns the variant id.
func (r VariantRecord) GetID() string { return r.VariantID }

// Cursor returns the keyset position of the record.
func (r VariantRecord) Cursor() VariantCursor {
	return VariantCursor{UpdatedAt: r.UpdatedAt, VariantID: r.VariantID}
}

// VariantSync is one variant submitted together with its complete move list.
type VariantSync struct {
	Variant Entity   `json:"variant"`
	Moves   []Entity `json:"moves"`
}

// Validate checks the variant, every move, and that no move claims to belong
// to a different variant.
func (v VariantSync) Validate() error {
	if err := v.Variant.Validate(); err != nil {
		return fmt.Errorf("variant: %w", err)
	}

	seen := make(map[string]struct{}, len(v.Moves))
	for _, m := range v.Moves {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("moves of %q: %w", v.Variant.ID, err)
		}
		if owner := m.VariantID(); owner != "" && owner != v.Variant.ID {
			return fmt.Errorf("%w: move %q belongs to variant %q, not %q",
				ErrMalformedEntity, m.ID, owner, v.Variant.ID)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateID, TableMoves, m.ID)
		}
		seen[m.ID] = struct{}{}
	}

	return nil
}

// Record converts the submission into its stored form.
func (v VariantSync) Record() VariantRecord {
	moves := cloneEntities(v.Moves)
	if moves == nil {
		moves = []Entity{}
	}

	return VariantRecord{
		VariantID: v.Variant.ID,
		Variant:   v.Variant.Clone(),
		Moves:     moves,
		UpdatedAt: v.Variant.UpdatedAt,
	}
}

// VariantCursor is a keyset position in the (updated_at, variant_id) order.
type VariantCursor struct {
	UpdatedAt int64
	VariantID string
}

// Before reports whether c sorts strictly before other.
func (c VariantCursor) Before(other VariantCursor) bool {
	if c.UpdatedAt != other.UpdatedAt {
		return c.UpdatedAt < other.UpdatedAt
	}

	return c.VariantID < other.VariantID
}

// VariantPageQuery selects one page of variant records changed after Since.
// At most one of After and Offset is used.
type VariantPageQuery struct {
	Since  int64
	After  *VariantCursor
	Offset int
	// Limit is the number of rows to fetch. Callers ask for one more than the
	// page size to learn whether another page exists.
	Limit int
}
