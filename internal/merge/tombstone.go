// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package merge

import (
	"slices"

	"github.com/MKhiriev/repertoire-sync/models"
)

type graveKey struct {
	table models.Table
	id    string
}

// graveyard holds the newest deletion time known per record.
type graveyard map[graveKey]int64

func newGraveyard(sets ...[]models.DeletedItem) graveyard {
	g := make(graveyard)
	for _, set := range sets {
		for _, d := range set {
			k := graveKey{table: d.TableName, id: d.RecordID}
			if ts, ok := g[k]; !ok || d.UpdatedAt > ts {
				g[k] = d.UpdatedAt
			}
		}
	}

	return g
}

// suppresses reports whether a write of record id at updatedAt is older than
// a known deletion of it.
func (g graveyard) suppresses(t models.Table, id string, updatedAt int64) bool {
	ts, ok := g[graveKey{table: t, id: id}]
	return ok && ts > updatedAt
}

// applyDeletions removes every target that is strictly older than its
// tombstone. Deleting a variant also removes its moves; those removals are
// not logged.
func (m *merger) applyDeletions(tombstones []models.DeletedItem) {
	for _, d := range tombstones {
		coll := m.snap.Collection(d.TableName)
		if coll == nil {
			m.stats.MissingTargets++
			continue
		}

		i := slices.IndexFunc(*coll, func(e models.Entity) bool { return e.ID == d.RecordID })
		if i < 0 {
			m.stats.MissingTargets++
			continue
		}
		if d.UpdatedAt <= (*coll)[i].UpdatedAt {
			m.stats.StaleDeletes++
			continue
		}

		*coll = slices.Delete(*coll, i, i+1)
		m.log(d.RecordID, d.TableName, models.OpDelete)

		if d.TableName == models.TableVariants {
			m.dropMoves(d.RecordID)
		}
	}
}

// upsertTombstones stores incoming tombstones by their own id with the same
// last-write-wins rule as entities. Tombstones already past retention still
// delete their targets but are neither stored nor logged.
func (m *merger) upsertTombstones(incoming []models.DeletedItem) {
	idx := models.IndexByID(m.snap.DeletedItems)

	for _, d := range incoming {
		if m.retain && d.Expired(m.cutoff) {
			m.stats.PrunedTombstones++
			continue
		}

		i, ok := idx[d.ID]
		if !ok {
			idx[d.ID] = len(m.snap.DeletedItems)
			m.snap.DeletedItems = append(m.snap.DeletedItems, d)
			m.log(d.ID, models.TableDeletedItems, models.OpInsert)
			continue
		}

		if d.UpdatedAt <= m.snap.DeletedItems[i].UpdatedAt {
			m.stats.StaleUpserts++
			continue
		}

		m.snap.DeletedItems[i] = d
		m.log(d.ID, models.TableDeletedItems, models.OpUpdate)
	}
}

// pruneTombstones drops tombstones at or before cutoff.
func (m *merger) pruneTombstones(cutoff int64) {
	before := len(m.snap.DeletedItems)
	m.snap.DeletedItems = PruneTombstones(m.snap.DeletedItems, cutoff)
	m.stats.PrunedTombstones += before - len(m.snap.DeletedItems)
}

// PruneTombstones returns the tombstones updated strictly after cutoff.
// The input slice is not modified.
func PruneTombstones(items []models.DeletedItem, cutoff int64) []models.DeletedItem {
	out := make([]models.DeletedItem, 0, len(items))
	for _, d := range items {
		if !d.Expired(cutoff) {
			out = append(out, d)
		}
	}

	return out
}
