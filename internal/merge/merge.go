// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package merge

import (
	"time"

	"github.com/MKhiriev/repertoire-sync/models"
)

// Options carries the inputs of a merge that do not come from the data.
type Options struct {
	// Now is the merge time in epoch milliseconds.
	Now int64

	// TombstoneRetention bounds how long tombstones are kept. Zero keeps
	// them forever.
	TombstoneRetention time.Duration
}

// Stats counts what a merge did, including the items it ignored.
type Stats struct {
	Inserted int
	Updated  int
	Deleted  int

	// StaleUpserts counts incoming entities not newer than the stored copy.
	StaleUpserts int
	// StaleDeletes counts tombstones not newer than their target.
	StaleDeletes int
	// MissingTargets counts tombstones whose target is not stored.
	MissingTargets int
	// Suppressed counts incoming entities discarded because a newer
	// tombstone exists for them.
	Suppressed int

	PrunedTombstones int
	OrphanMoves      int
}

// Result is the outcome of a merge.
type Result struct {
	Snapshot models.Snapshot
	Changes  []models.Change
	Stats    Stats

	// Created is true when there was no stored snapshot and the delta was
	// taken as is.
	Created bool
}

// Merge folds delta into current and returns the new snapshot with the log
// of applied changes. current is not modified. A nil current means the user
// has never synced: the delta becomes the snapshot verbatim and no changes
// are logged.
func Merge(current *models.Snapshot, delta models.Snapshot, opts Options) Result {
	if current == nil {
		s := delta.Clone()
		s.Normalize()
		return Result{Snapshot: s, Changes: []models.Change{}, Created: true}
	}

	m := &merger{
		snap:    current.Clone(),
		changes: make([]models.Change, 0),
	}
	m.snap.Normalize()
	m.graves = newGraveyard(m.snap.DeletedItems, delta.DeletedItems)
	if opts.TombstoneRetention > 0 {
		m.retain = true
		m.cutoff = opts.Now - opts.TombstoneRetention.Milliseconds()
	}

	m.applyDeletions(delta.DeletedItems)

	touched := make(map[string]struct{})
	for _, t := range models.UpsertTables {
		for _, id := range m.upsertEntities(t, *delta.Collection(t)) {
			if t == models.TableVariants {
				touched[id] = struct{}{}
			}
		}
	}
	m.upsertTombstones(delta.DeletedItems)

	m.cascadeMoves(touched, delta.Moves)

	if m.retain {
		m.pruneTombstones(m.cutoff)
	}

	m.sweepOrphans()

	return Result{Snapshot: m.snap, Changes: m.changes, Stats: m.stats}
}

type merger struct {
	snap    models.Snapshot
	graves  graveyard
	changes []models.Change
	stats   Stats

	// retain is set when tombstones at or before cutoff are dropped.
	retain bool
	cutoff int64
}

func (m *merger) log(id string, t models.Table, op models.Operation) {
	m.changes = append(m.changes, models.Change{ID: id, Table: t, Op: op})

	switch op {
	case models.OpInsert:
		m.stats.Inserted++
	case models.OpUpdate:
		m.stats.Updated++
	case models.OpDelete:
		m.stats.Deleted++
	}
}

// upsertEntities merges incoming into the collection of t and returns the
// ids that were inserted or replaced.
func (m *merger) upsertEntities(t models.Table, incoming []models.Entity) []string {
	coll := m.snap.Collection(t)
	idx := models.IndexByID(*coll)

	var applied []string
	for _, e := range incoming {
		if m.graves.suppresses(t, e.ID, e.UpdatedAt) {
			m.stats.Suppressed++
			continue
		}

		i, ok := idx[e.ID]
		if !ok {
			idx[e.ID] = len(*coll)
			*coll = append(*coll, e.Clone())
			m.log(e.ID, t, models.OpInsert)
			applied = append(applied, e.ID)
			continue
		}

		if !e.NewerThan((*coll)[i]) {
			m.stats.StaleUpserts++
			continue
		}

		(*coll)[i] = e.Clone()
		m.log(e.ID, t, models.OpUpdate)
		applied = append(applied, e.ID)
	}

	return applied
}
