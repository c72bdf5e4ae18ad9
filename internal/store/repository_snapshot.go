package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/models"
)

// snapshotRepository is the SQL implementation of [SnapshotRepository].
// The snapshot is kept as one JSON document per (user, kind) row.
type snapshotRepository struct {
	db  *DB
	now func() int64
}

// NewSnapshotRepository returns a [SnapshotRepository] backed by db.
func NewSnapshotRepository(db *DB, log *logger.Logger) SnapshotRepository {
	log.Debug().Msg("creating snapshot repository")
	return &snapshotRepository{db: db, now: unixMilli}
}

func (r *snapshotRepository) Get(ctx context.Context, userID string, kind models.Channel) (StoredSnapshot, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSnapshotQuery(r.db.builder(), userID, kind)
	if err != nil {
		return StoredSnapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		payload []byte
		stored  StoredSnapshot
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&payload, &stored.Version, &stored.UpdatedAt)
	if isNoRows(err) {
		return StoredSnapshot{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*snapshotRepository.Get").Str("kind", string(kind)).Msg("error reading snapshot")
		return StoredSnapshot{}, r.db.fail(ErrScanningRow, err)
	}

	if err = json.Unmarshal(payload, &stored.Snapshot); err != nil {
		log.Err(err).Str("func", "*snapshotRepository.Get").Str("kind", string(kind)).Msg("stored snapshot is not valid JSON")
		return StoredSnapshot{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	stored.Snapshot.Normalize()

	return stored, nil
}

func (r *snapshotRepository) Put(ctx context.Context, userID string, kind models.Channel, snapshot models.Snapshot, expectedVersion int64) (int64, error) {
	log := logger.FromContext(ctx)

	snapshot.Normalize()
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	var query string
	var args []any
	if expectedVersion == 0 {
		query, args, err = buildInsertSnapshotQuery(r.db.builder(), userID, kind, string(payload), r.now())
	} else {
		query, args, err = buildUpdateSnapshotQuery(r.db.builder(), userID, kind, string(payload), r.now(), expectedVersion)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*snapshotRepository.Put").Str("kind", string(kind)).Msg("error writing snapshot")
		return 0, r.db.fail(ErrExecutingStatement, err)
	}
	if err = affectedOne(res); err != nil {
		log.Debug().Str("func", "*snapshotRepository.Put").Str("kind", string(kind)).
			Int64("expected_version", expectedVersion).Msg("snapshot write lost a version race")
		return 0, err
	}

	return expectedVersion + 1, nil
}

func (r *snapshotRepository) Delete(ctx context.Context, userID string) error {
	query, args, err := buildDeleteSnapshotsQuery(r.db.builder(), userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*snapshotRepository.Delete").Msg("error deleting snapshots")
		return r.db.fail(ErrExecutingStatement, err)
	}

	return nil
}

func (r *snapshotRepository) ListOwners(ctx context.Context, kind models.Channel) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListOwnersQuery(r.db.builder(), kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*snapshotRepository.ListOwners").Msg("error listing snapshot owners")
		return nil, r.db.fail(ErrExecutingQuery, err)
	}
	defer rows.Close()

	owners := make([]string, 0)
	for rows.Next() {
		var userID string
		if err = rows.Scan(&userID); err != nil {
			return nil, r.db.fail(ErrScanningRow, err)
		}
		owners = append(owners, userID)
	}
	if err = rows.Err(); err != nil {
		return nil, r.db.fail(ErrScanningRows, err)
	}

	return owners, nil
}

func unixMilli() int64 {
	return time.Now().UnixMilli()
}
