package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/migrations"
)

// DB is a database/sql pool bound to one SQL dialect.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded migrations of the pool's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// builder returns a squirrel statement builder with the dialect's
// placeholders.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == migrations.DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}

	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// readSnapshotOptions returns the options of a read-only transaction whose
// statements all see the same data. SQLite transactions are serializable
// and its driver ignores isolation options.
func (db *DB) readSnapshotOptions() *sql.TxOptions {
	if db.dialect == migrations.DialectPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}

	return nil
}

// fail wraps a driver error with the sentinel describing the failed step and,
// when the classifier says so, with [ErrTransient].
func (db *DB) fail(sentinel, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrTransient, sentinel, err)
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx runs fn inside a transaction, committing when fn succeeds and
// rolling back otherwise.
func (db *DB) withTx(ctx context.Context, opts *sql.TxOptions, fn func(tx dbtx) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return db.fail(ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = db.fail(ErrCommitingTransaction, commitErr)
		}
	}()

	return fn(tx)
}

// affectedOne maps a zero-row write to [ErrVersionConflict].
func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrVersionConflict
	}

	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
