package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// safeToRetry mimics a pgconn error raised before the query was sent.
type safeToRetry struct{}

func (safeToRetry) Error() string     { return "dial tcp: connection refused" }
func (safeToRetry) SafeToRetry() bool { return true }

func TestPostgresErrorClassifier(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
		{name: "connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, want: Retryable},
		{name: "connection does not exist", err: &pgconn.PgError{Code: pgerrcode.ConnectionDoesNotExist}, want: Retryable},
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, want: Retryable},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, want: Retryable},
		{name: "cannot connect now", err: &pgconn.PgError{Code: pgerrcode.CannotConnectNow}, want: Retryable},
		{name: "lock not available", err: &pgconn.PgError{Code: pgerrcode.LockNotAvailable}, want: Retryable},
		{name: "wrapped serialization failure", err: fmt.Errorf("page: %w", &pgconn.PgError{Code: pgerrcode.SerializationFailure}), want: Retryable},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: NonRetryable},
		{name: "not null violation", err: &pgconn.PgError{Code: pgerrcode.NotNullViolation}, want: NonRetryable},
		{name: "invalid json", err: &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, want: NonRetryable},
		{name: "undefined table", err: &pgconn.PgError{Code: pgerrcode.UndefinedTable}, want: NonRetryable},
		{name: "safe to retry", err: fmt.Errorf("connect: %w", safeToRetry{}), want: Retryable},
	}

	c := NewPostgresErrorClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestDB_Fail_MarksTransientErrors(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	err := db.fail(ErrExecutingStatement, &pgconn.PgError{Code: pgerrcode.SerializationFailure})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.ErrorIs(t, err, ErrTransient)
	assert.True(t, IsRetryable(err))

	err = db.fail(ErrExecutingStatement, &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.False(t, IsRetryable(err))
}
