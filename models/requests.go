// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"strconv"
)

// SyncTime is the client's last_sync_time in epoch milliseconds. Clients send
// it as a number or as a numeric string.
type SyncTime struct {
	Millis int64
	Valid  bool
}

// NewSyncTime returns a valid SyncTime.
func NewSyncTime(ms int64) SyncTime {
	return SyncTime{Millis: ms, Valid: true}
}

func (t SyncTime) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}

	return []byte(strconv.FormatInt(t.Millis, 10)), nil
}

func (t *SyncTime) UnmarshalJSON(data []byte) error {
	ms, present, err := parseTimestamp(data)
	if err != nil {
		return ErrInvalidSyncTime
	}

	*t = SyncTime{Millis: ms, Valid: present}
	return nil
}

// PullRequest is the body of the basic and full pull operations.
type PullRequest struct {
	LastSyncTime SyncTime `json:"last_sync_time"`
}

// Validate checks that last_sync_time was supplied.
func (r PullRequest) Validate() error {
	if !r.LastSyncTime.Valid {
		return ErrMissingLastSyncTime
	}

	return nil
}

// BasicPushRequest is the body of the basic push operation.
type BasicPushRequest = BasicData

// Snapshot lifts basic data into a snapshot with empty variant collections.
func (b BasicData) Snapshot() Snapshot {
	return Snapshot{
		Openings:     b.Openings,
		Chapters:     b.Chapters,
		Settings:     b.Settings,
		DeletedItems: b.DeletedItems,
	}
}

// VariantPullRequest is the body of the variants pull operation.
//
// LastBatchID and Offset are alternative resumption tokens; a request may
// carry at most one of them.
type VariantPullRequest struct {
	LastSyncTime SyncTime `json:"last_sync_time"`
	BatchSize    int      `json:"batch_size,omitempty"`
	LastBatchID  string   `json:"last_batch_id,omitempty"`
	Offset       *int     `json:"offset,omitempty"`
}

// VariantPushRequest is the body of the variants push operation.
type VariantPushRequest struct {
	Variants []VariantSync `json:"variants"`
}

// UnmarshalJSON tolerates a missing or null variants list.
func (r *VariantPushRequest) UnmarshalJSON(data []byte) error {
	var aux struct {
		Variants []VariantSync `json:"variants"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Variants = aux.Variants
	if r.Variants == nil {
		r.Variants = []VariantSync{}
	}

	return nil
}
