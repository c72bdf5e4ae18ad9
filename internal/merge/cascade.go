// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package merge

import (
	"slices"

	"github.com/MKhiriev/repertoire-sync/models"
)

// cascadeMoves replaces the moves of every touched variant with the moves
// submitted for it. Moves of untouched variants are left alone, and
// submitted moves of variants that lost their upsert are ignored.
func (m *merger) cascadeMoves(touched map[string]struct{}, incoming []models.Entity) {
	if len(touched) == 0 {
		return
	}

	installed := make([]models.Entity, 0, len(incoming))
	installedIDs := make(map[string]struct{}, len(incoming))
	for _, mv := range incoming {
		if _, ok := touched[mv.VariantID()]; ok {
			installed = append(installed, mv.Clone())
			installedIDs[mv.ID] = struct{}{}
		}
	}

	// a move belongs to one variant: a re-parented move leaves its old one
	m.snap.Moves = slices.DeleteFunc(m.snap.Moves, func(mv models.Entity) bool {
		if _, ok := touched[mv.VariantID()]; ok {
			return true
		}
		_, moved := installedIDs[mv.ID]
		return moved
	})

	m.snap.Moves = append(m.snap.Moves, installed...)
}

func (m *merger) dropMoves(variantID string) {
	m.snap.Moves = slices.DeleteFunc(m.snap.Moves, func(mv models.Entity) bool {
		return mv.VariantID() == variantID
	})
}

// sweepOrphans drops moves that do not belong to a stored variant.
func (m *merger) sweepOrphans() {
	if len(m.snap.Moves) == 0 {
		return
	}

	live := make(map[string]struct{}, len(m.snap.Variants))
	for _, v := range m.snap.Variants {
		live[v.ID] = struct{}{}
	}

	before := len(m.snap.Moves)
	m.snap.Moves = slices.DeleteFunc(m.snap.Moves, func(mv models.Entity) bool {
		_, ok := live[mv.VariantID()]
		return !ok
	})
	m.stats.OrphanMoves += before - len(m.snap.Moves)
}
