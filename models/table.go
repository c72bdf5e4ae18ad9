// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Table identifies one synchronized collection of a user's snapshot.
//
// Table names travel over the wire as plain strings (for example in
// [DeletedItem.TableName] or in [Change.Table]); they are parsed into a Table
// once at the service boundary with [ParseTable] and never switched on as raw
// strings afterwards.
type Table string

const (
	TableOpenings     Table = "openings"
	TableChapters     Table = "chapters"
	TableVariants     Table = "variants"
	TableMoves        Table = "moves"
	TableSettings     Table = "settings"
	TableDeletedItems Table = "deleteditems"
)

// UpsertTables lists the entity collections merged by id, in merge order.
// Moves are absent on purpose: they are owned by their variant and only ever
// replaced wholesale together with it.
var UpsertTables = []Table{TableOpenings, TableChapters, TableVariants, TableSettings}

// BasicTables lists the entity collections exchanged on the basic channel.
var BasicTables = []Table{TableOpenings, TableChapters, TableSettings}

var deletableTables = map[Table]struct{}{
	TableOpenings: {},
	TableChapters: {},
	TableVariants: {},
	TableSettings: {},
}

// ParseTable converts a wire table name into a [Table].
func ParseTable(name string) (Table, error) {
	switch t := Table(name); t {
	case TableOpenings, TableChapters, TableVariants, TableMoves, TableSettings, TableDeletedItems:
		return t, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

// Deletable reports whether a tombstone may target the table.
func (t Table) Deletable() bool {
	_, ok := deletableTables[t]
	return ok
}

func (t Table) String() string {
	return string(t)
}

// Channel names one of the sync protocols. It doubles as the storage kind of
// a per-user snapshot and as a metrics label.
type Channel string

const (
	// ChannelBasic exchanges openings, chapters, settings and tombstones.
	ChannelBasic Channel = "basic"
	// ChannelFull exchanges the whole dataset, variants and moves included,
	// as a single document.
	ChannelFull Channel = "full"
	// ChannelVariants exchanges variant records in batches.
	ChannelVariants Channel = "variants"
)
