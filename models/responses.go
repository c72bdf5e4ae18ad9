// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Operation is the kind of change applied to one entity during a merge.
// Its numeric value is part of the wire format ("u").
type Operation int

const (
	OpInsert Operation = 1
	OpUpdate Operation = 2
	OpDelete Operation = 3
)

func (o Operation) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}

	return "unknown"
}

// Change is one entry of the applied-change log returned by a push.
type Change struct {
	ID    string    `json:"id"`
	Table Table     `json:"table"`
	Op    Operation `json:"u"`
}

// Push outcome values of [PushResponse.Operation].
const (
	PushInsert = "insert"
	PushUpdate = "update"
)

// PushResponse is returned by the basic and full push operations.
//
// Operation is "insert" when the push created the user's first snapshot and
// "update" when it was merged into an existing one. UpdateItems lists every
// change actually applied; stale items are not listed.
type PushResponse struct {
	Success     bool     `json:"success"`
	Operation   string   `json:"operation"`
	UpdateItems []Change `json:"updateItems"`
}

// PullResponse is returned by the basic pull operation. Data is nil when the
// user has no stored snapshot yet.
type PullResponse struct {
	Data *BasicData `json:"data"`
}

// FullPullResponse is returned by the full pull operation.
type FullPullResponse struct {
	Data *Snapshot `json:"data"`
}

// VariantPage is one batch of the variants pull operation.
//
// LastBatchID is set when the request paged by cursor (or carried no token);
// NextOffset is set when it paged by offset.
type VariantPage struct {
	Variants    []VariantRecord `json:"variants"`
	HasMore     bool            `json:"has_more"`
	LastBatchID string          `json:"last_batch_id,omitempty"`
	NextOffset  *int            `json:"next_offset,omitempty"`
	TotalCount  int             `json:"total_count"`
}

// SuccessResponse acknowledges an operation with no payload.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
