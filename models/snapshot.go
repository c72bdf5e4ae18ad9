// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Snapshot is the full set of a user's stored entities at a point in time.
// The same shape is used for the delta a client submits in one request.
type Snapshot struct {
	Openings     []Entity      `json:"openings"`
	Chapters     []Entity      `json:"chapters"`
	Variants     []Entity      `json:"variants"`
	Moves        []Entity      `json:"moves"`
	Settings     []Entity      `json:"settings"`
	DeletedItems []DeletedItem `json:"deleteditems"`
}

// BasicData is the part of a snapshot exchanged on the basic channel.
type BasicData struct {
	Openings     []Entity      `json:"openings"`
	Chapters     []Entity      `json:"chapters"`
	Settings     []Entity      `json:"settings"`
	DeletedItems []DeletedItem `json:"deleteditems"`
}

// Collection returns a handle to the entity collection of table t, or nil
// for tables that do not hold entities (deleteditems).
func (s *Snapshot) Collection(t Table) *[]Entity {
	switch t {
	case TableOpenings:
		return &s.Openings
	case TableChapters:
		return &s.Chapters
	case TableVariants:
		return &s.Variants
	case TableMoves:
		return &s.Moves
	case TableSettings:
		return &s.Settings
	}

	return nil
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Openings:     cloneEntities(s.Openings),
		Chapters:     cloneEntities(s.Chapters),
		Variants:     cloneEntities(s.Variants),
		Moves:        cloneEntities(s.Moves),
		Settings:     cloneEntities(s.Settings),
		DeletedItems: append([]DeletedItem(nil), s.DeletedItems...),
	}
}

// Normalize replaces nil collections with empty ones so that every
// collection is encoded as a JSON array.
func (s *Snapshot) Normalize() {
	for _, t := range []Table{TableOpenings, TableChapters, TableVariants, TableMoves, TableSettings} {
		if c := s.Collection(t); *c == nil {
			*c = []Entity{}
		}
	}
	if s.DeletedItems == nil {
		s.DeletedItems = []DeletedItem{}
	}
}

// Basic projects the snapshot onto the basic channel collections.
func (s Snapshot) Basic() BasicData {
	n := s.Clone()
	n.Normalize()

	return BasicData{
		Openings:     n.Openings,
		Chapters:     n.Chapters,
		Settings:     n.Settings,
		DeletedItems: n.DeletedItems,
	}
}

// Validate checks every entity and tombstone for well-formedness and
// rejects duplicate ids inside a collection.
func (s Snapshot) Validate() error {
	for _, t := range []Table{TableOpenings, TableChapters, TableVariants, TableMoves, TableSettings} {
		seen := make(map[string]struct{})
		for _, e := range *s.Collection(t) {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("%s: %w", t, err)
			}
			if _, dup := seen[e.ID]; dup {
				return fmt.Errorf("%w: %s/%s", ErrDuplicateID, t, e.ID)
			}
			seen[e.ID] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	for _, d := range s.DeletedItems {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("%s: %w", TableDeletedItems, err)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateID, TableDeletedItems, d.ID)
		}
		seen[d.ID] = struct{}{}
	}

	return nil
}

// FilterSince returns the entities and tombstones updated strictly after
// since. Moves are kept only for variants present in the result.
func (s Snapshot) FilterSince(since int64) Snapshot {
	out := Snapshot{
		Openings:     entitiesSince(s.Openings, since),
		Chapters:     entitiesSince(s.Chapters, since),
		Variants:     entitiesSince(s.Variants, since),
		Settings:     entitiesSince(s.Settings, since),
		DeletedItems: make([]DeletedItem, 0, len(s.DeletedItems)),
	}

	kept := make(map[string]struct{}, len(out.Variants))
	for _, v := range out.Variants {
		kept[v.ID] = struct{}{}
	}
	out.Moves = make([]Entity, 0)
	for _, m := range s.Moves {
		if _, ok := kept[m.VariantID()]; ok {
			out.Moves = append(out.Moves, m.Clone())
		}
	}

	for _, d := range s.DeletedItems {
		if d.UpdatedAt > since {
			out.DeletedItems = append(out.DeletedItems, d)
		}
	}

	return out
}

// IndexByID maps entity ids to their position in items.
func IndexByID[T interface{ GetID() string }](items []T) map[string]int {
	idx := make(map[string]int, len(items))
	for i, it := range items {
		idx[it.GetID()] = i
	}

	return idx
}

func entitiesSince(items []Entity, since int64) []Entity {
	out := make([]Entity, 0, len(items))
	for _, e := range items {
		if e.UpdatedAt > since {
			out = append(out, e.Clone())
		}
	}

	return out
}

func cloneEntities(items []Entity) []Entity {
	if items == nil {
		return nil
	}

	out := make([]Entity, len(items))
	for i, e := range items {
		out[i] = e.Clone()
	}

	return out
}
