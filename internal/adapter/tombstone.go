package adapter

import (
	"github.com/MKhiriev/repertoire-sync/internal/utils"
	"github.com/MKhiriev/repertoire-sync/models"
)

var ids = utils.NewUUIDGenerator()

// NewTombstone records the deletion of recordID from table at deletedAt
// (epoch milliseconds) under a fresh time-ordered id.
func NewTombstone(table models.Table, recordID string, deletedAt int64) models.DeletedItem {
	return models.NewDeletedItem(ids.Generate(), table, recordID, deletedAt)
}
