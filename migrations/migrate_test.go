// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations: goose's first query fails
	err = Migrate(db, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, Dialect("oracle"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestEmbeddedMigrations_BothDialectsShipSameSteps(t *testing.T) {
	pg, err := fs.Glob(embedMigrations, "postgres/*.sql")
	require.NoError(t, err)
	lite, err := fs.Glob(embedMigrations, "sqlite/*.sql")
	require.NoError(t, err)

	require.NotEmpty(t, pg)
	assert.Len(t, lite, len(pg))
}

func TestMigrate_SQLiteInMemory(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db, DialectSQLite))

	for _, table := range []string{"user_snapshots", "user_variants"} {
		var name string
		err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	// re-running is a no-op
	require.NoError(t, Migrate(db, DialectSQLite))
}
