package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Dialect selects the migration set and the goose dialect.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var errNilDB = errors.New("migration error: db is nil")

// Migrate applies every pending migration of dialect to db.
func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errNilDB
	}

	dir, err := fs.Sub(embedMigrations, string(dialect))
	if err != nil {
		return fmt.Errorf("migration error: no migrations for dialect %q: %w", dialect, err)
	}
	goose.SetBaseFS(dir)
	defer goose.SetBaseFS(nil)

	if err = goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err = goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
