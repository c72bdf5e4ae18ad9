// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

var (
	// ErrMalformedEntity is returned when a record lacks an id or updatedAt,
	// or cannot be decoded at all.
	ErrMalformedEntity = errors.New("malformed entity")

	// ErrUnknownTable is returned for table names outside the synchronized
	// collections, or for tombstones targeting a table that cannot be deleted.
	ErrUnknownTable = errors.New("unknown table")

	// ErrDuplicateID is returned when one submitted collection contains the
	// same id more than once.
	ErrDuplicateID = errors.New("duplicate id in collection")

	// ErrMissingLastSyncTime is returned when a pull request omits
	// last_sync_time.
	ErrMissingLastSyncTime = errors.New("last_sync_time is required")

	// ErrInvalidSyncTime is returned when last_sync_time is not a number.
	ErrInvalidSyncTime = errors.New("last_sync_time must be a number")
)
