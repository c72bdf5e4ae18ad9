package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/repertoire-sync/models"
)

const (
	snapshotsTable = "user_snapshots"
	variantsTable  = "user_variants"
)

var variantColumns = []string{"variant_id", "variant", "moves", "updated_at", "version"}

func buildSelectSnapshotQuery(b sq.StatementBuilderType, userID string, kind models.Channel) (string, []any, error) {
	return b.Select("payload", "version", "updated_at").
		From(snapshotsTable).
		Where("user_id = ? AND kind = ?", userID, string(kind)).
		ToSql()
}

// buildInsertSnapshotQuery inserts the first version of a snapshot. A row
// that already exists is left untouched and reported as zero rows affected.
func buildInsertSnapshotQuery(b sq.StatementBuilderType, userID string, kind models.Channel, payload string, now int64) (string, []any, error) {
	return b.Insert(snapshotsTable).
		Columns("user_id", "kind", "payload", "version", "updated_at").
		Values(userID, string(kind), payload, 1, now).
		Suffix("ON CONFLICT (user_id, kind) DO NOTHING").
		ToSql()
}

// buildUpdateSnapshotQuery replaces a snapshot only while its version still
// equals expectedVersion.
func buildUpdateSnapshotQuery(b sq.StatementBuilderType, userID string, kind models.Channel, payload string, now, expectedVersion int64) (string, []any, error) {
	return b.Update(snapshotsTable).
		Set("payload", payload).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", now).
		Where("user_id = ? AND kind = ? AND version = ?", userID, string(kind), expectedVersion).
		ToSql()
}

func buildDeleteSnapshotsQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Delete(snapshotsTable).
		Where("user_id = ?", userID).
		ToSql()
}

func buildListOwnersQuery(b sq.StatementBuilderType, kind models.Channel) (string, []any, error) {
	return b.Select("user_id").
		From(snapshotsTable).
		Where("kind = ?", string(kind)).
		OrderBy("user_id").
		ToSql()
}

func buildSelectVariantQuery(b sq.StatementBuilderType, userID, variantID string) (string, []any, error) {
	return b.Select(variantColumns...).
		From(variantsTable).
		Where("user_id = ? AND variant_id = ?", userID, variantID).
		ToSql()
}

func buildInsertVariantQuery(b sq.StatementBuilderType, userID string, rec models.VariantRecord, variant, moves string) (string, []any, error) {
	return b.Insert(variantsTable).
		Columns("user_id", "variant_id", "variant", "moves", "updated_at", "version").
		Values(userID, rec.VariantID, variant, moves, rec.UpdatedAt, 1).
		Suffix("ON CONFLICT (user_id, variant_id) DO NOTHING").
		ToSql()
}

func buildUpdateVariantQuery(b sq.StatementBuilderType, userID string, rec models.VariantRecord, variant, moves string) (string, []any, error) {
	return b.Update(variantsTable).
		Set("variant", variant).
		Set("moves", moves).
		Set("updated_at", rec.UpdatedAt).
		Set("version", sq.Expr("version + 1")).
		Where("user_id = ? AND variant_id = ? AND version = ?", userID, rec.VariantID, rec.Version).
		ToSql()
}

func buildDeleteVariantQuery(b sq.StatementBuilderType, userID, variantID string, expectedVersion int64) (string, []any, error) {
	return b.Delete(variantsTable).
		Where("user_id = ? AND variant_id = ? AND version = ?", userID, variantID, expectedVersion).
		ToSql()
}

func buildDeleteAllVariantsQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Delete(variantsTable).
		Where("user_id = ?", userID).
		ToSql()
}

func buildCountVariantsQuery(b sq.StatementBuilderType, userID string, since int64) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(variantsTable).
		Where("user_id = ? AND updated_at > ?", userID, since).
		ToSql()
}

// buildPageVariantsQuery selects one page in (updated_at, variant_id) order.
// A keyset cursor takes precedence over an offset.
func buildPageVariantsQuery(b sq.StatementBuilderType, userID string, q models.VariantPageQuery) (string, []any, error) {
	sel := b.Select(variantColumns...).
		From(variantsTable).
		Where("user_id = ? AND updated_at > ?", userID, q.Since)

	switch {
	case q.After != nil:
		sel = sel.Where("(updated_at > ? OR (updated_at = ? AND variant_id > ?))",
			q.After.UpdatedAt, q.After.UpdatedAt, q.After.VariantID)
	case q.Offset > 0:
		sel = sel.Offset(uint64(q.Offset))
	}

	sel = sel.OrderBy("updated_at ASC", "variant_id ASC")
	if q.Limit > 0 {
		sel = sel.Limit(uint64(q.Limit))
	}

	return sel.ToSql()
}
