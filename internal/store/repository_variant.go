package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/models"
)

// variantRepository is the SQL implementation of [VariantRepository]. The
// variant and its moves are stored as two JSON columns of one row.
type variantRepository struct {
	db *DB
}

// NewVariantRepository returns a [VariantRepository] backed by db.
func NewVariantRepository(db *DB, log *logger.Logger) VariantRepository {
	log.Debug().Msg("creating variant repository")
	return &variantRepository{db: db}
}

func (r *variantRepository) Get(ctx context.Context, userID, variantID string) (models.VariantRecord, error) {
	query, args, err := buildSelectVariantQuery(r.db.builder(), userID, variantID)
	if err != nil {
		return models.VariantRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := scanVariant(r.db.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return models.VariantRecord{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*variantRepository.Get").
			Str("variant_id", variantID).Msg("error reading variant")
		return models.VariantRecord{}, r.db.fail(ErrScanningRow, err)
	}

	return rec, nil
}

func (r *variantRepository) Put(ctx context.Context, userID string, record models.VariantRecord) (int64, error) {
	log := logger.FromContext(ctx)

	variant, moves, err := encodeVariant(record)
	if err != nil {
		return 0, err
	}

	var query string
	var args []any
	if record.Version == 0 {
		query, args, err = buildInsertVariantQuery(r.db.builder(), userID, record, variant, moves)
	} else {
		query, args, err = buildUpdateVariantQuery(r.db.builder(), userID, record, variant, moves)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*variantRepository.Put").Str("variant_id", record.VariantID).Msg("error writing variant")
		return 0, r.db.fail(ErrExecutingStatement, err)
	}
	if err = affectedOne(res); err != nil {
		return 0, err
	}

	return record.Version + 1, nil
}

func (r *variantRepository) Delete(ctx context.Context, userID, variantID string, expectedVersion int64) error {
	query, args, err := buildDeleteVariantQuery(r.db.builder(), userID, variantID, expectedVersion)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*variantRepository.Delete").
			Str("variant_id", variantID).Msg("error deleting variant")
		return r.db.fail(ErrExecutingStatement, err)
	}

	return affectedOne(res)
}

func (r *variantRepository) Page(ctx context.Context, userID string, q models.VariantPageQuery) ([]models.VariantRecord, int, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountVariantsQuery(r.db.builder(), userID, q.Since)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	pageQuery, pageArgs, err := buildPageVariantsQuery(r.db.builder(), userID, q)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		total   int
		records = make([]models.VariantRecord, 0)
	)
	err = r.db.withTx(ctx, r.db.readSnapshotOptions(), func(tx dbtx) error {
		if err := tx.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return r.db.fail(ErrScanningRow, err)
		}

		rows, err := tx.QueryContext(ctx, pageQuery, pageArgs...)
		if err != nil {
			return r.db.fail(ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanVariant(rows)
			if err != nil {
				return r.db.fail(ErrScanningRow, err)
			}
			records = append(records, rec)
		}
		if err := rows.Err(); err != nil {
			return r.db.fail(ErrScanningRows, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*variantRepository.Page").Msg("error reading variant page")
		return nil, 0, err
	}

	return records, total, nil
}

func (r *variantRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	query, args, err := buildDeleteAllVariantsQuery(r.db.builder(), userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*variantRepository.DeleteAll").Msg("error deleting variants")
		return 0, r.db.fail(ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVariant(row rowScanner) (models.VariantRecord, error) {
	var (
		rec            models.VariantRecord
		variant, moves []byte
	)
	if err := row.Scan(&rec.VariantID, &variant, &moves, &rec.UpdatedAt, &rec.Version); err != nil {
		return models.VariantRecord{}, err
	}

	if err := json.Unmarshal(variant, &rec.Variant); err != nil {
		return models.VariantRecord{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	if err := json.Unmarshal(moves, &rec.Moves); err != nil {
		return models.VariantRecord{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	if rec.Moves == nil {
		rec.Moves = []models.Entity{}
	}

	return rec, nil
}

func encodeVariant(rec models.VariantRecord) (string, string, error) {
	variant, err := json.Marshal(rec.Variant)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	moves := rec.Moves
	if moves == nil {
		moves = []models.Entity{}
	}
	encodedMoves, err := json.Marshal(moves)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	return string(variant), string(encodedMoves), nil
}
