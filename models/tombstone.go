// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// DeletedItem is a tombstone: the record of a client deleting an entity.
//
// Tombstones are stored and re-synced like any other record so that clients
// which synced before the deletion learn about it. A tombstone only removes
// an entity whose UpdatedAt is strictly smaller than its own.
type DeletedItem struct {
	// ID is the identifier of the tombstone itself.
	ID string `json:"id"`

	// TableName is the collection of the deleted entity.
	TableName Table `json:"tableName"`

	// RecordID is the identifier of the deleted entity.
	RecordID string `json:"recordId"`

	// UpdatedAt is the deletion time in epoch milliseconds.
	UpdatedAt int64 `json:"updatedAt"`

	stamped bool
}

// NewDeletedItem builds a tombstone for recordID in table.
func NewDeletedItem(id string, table Table, recordID string, updatedAt int64) DeletedItem {
	return DeletedItem{ID: id, TableName: table, RecordID: recordID, UpdatedAt: updatedAt, stamped: true}
}

// GetID returns the tombstone identifier.
func (d DeletedItem) GetID() string { return d.ID }

// GetUpdatedAt returns the deletion timestamp.
func (d DeletedItem) GetUpdatedAt() int64 { return d.UpdatedAt }

// Validate checks that the tombstone is well formed and targets a table
// that supports deletion.
func (d DeletedItem) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: tombstone with empty id", ErrMalformedEntity)
	}
	if d.RecordID == "" {
		return fmt.Errorf("%w: tombstone %q has no recordId", ErrMalformedEntity, d.ID)
	}
	if !d.stamped {
		return fmt.Errorf("%w: tombstone %q has no updatedAt", ErrMalformedEntity, d.ID)
	}
	if !d.TableName.Deletable() {
		return fmt.Errorf("%w: tombstone %q targets %q", ErrUnknownTable, d.ID, d.TableName)
	}

	return nil
}

// Expired reports whether the tombstone is at or past the retention cutoff.
func (d DeletedItem) Expired(cutoff int64) bool {
	return d.UpdatedAt <= cutoff
}

// UnmarshalJSON accepts updatedAt as a number or numeric string and records
// whether it was present.
func (d *DeletedItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        string          `json:"id"`
		TableName string          `json:"tableName"`
		RecordID  string          `json:"recordId"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEntity, err)
	}

	*d = DeletedItem{ID: aux.ID, TableName: Table(aux.TableName), RecordID: aux.RecordID}

	if aux.UpdatedAt != nil {
		ts, present, err := parseTimestamp(aux.UpdatedAt)
		if err != nil {
			return fmt.Errorf("%w: updatedAt of tombstone %q: %w", ErrMalformedEntity, aux.ID, err)
		}
		d.UpdatedAt = ts
		d.stamped = present
	}

	return nil
}
