// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package merge implements the conflict-resolution engine that folds a
// client-submitted delta into the server-side snapshot of one user.
//
// Merge is a pure function: it performs no I/O and never reads the clock.
// Callers inject the current time through [Options] and persist the
// returned snapshot themselves.
//
// Resolution is last-write-wins on whole entities, keyed by id and ordered by
// the client-set updatedAt. The steps, in order, are:
//
//   - deletions: incoming tombstones remove strictly older targets;
//   - upserts: openings, chapters, variants, settings and deleteditems are
//     inserted when absent and replaced when the incoming copy is strictly
//     newer;
//   - cascade: every variant that was inserted or updated has its moves
//     replaced by the moves submitted for it;
//   - retention: tombstones older than the retention window are dropped;
//   - orphan sweep: moves whose variant is gone are dropped.
//
// An upsert is discarded when a stored or incoming tombstone for the same
// record carries a strictly greater updatedAt, so the later operation wins
// no matter which list it arrived in or which request carried it.
package merge
