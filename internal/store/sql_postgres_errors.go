package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
//
// A snapshot or variant write is retried when the server lost the connection
// (class 08), rolled the transaction back (class 40: serialization failures
// of the repeatable-read page query and deadlocks), is starting up (57P03)
// or could not take a row lock (55P03). Constraint, data and syntax errors
// are final.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that never reached the
// server are retryable when pgconn marks them safe to retry.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPgCode(pgErr.Code)
	}
	if pgconn.SafeToRetry(err) {
		return Retryable
	}

	return NonRetryable
}

func classifyPgCode(code string) ErrorClassification {
	switch {
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		code == pgerrcode.CannotConnectNow,
		code == pgerrcode.LockNotAvailable:
		return Retryable
	}

	return NonRetryable
}
