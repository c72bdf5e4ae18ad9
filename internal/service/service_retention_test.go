package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/models"
)

const retentionNow = 10_000_000

func newTestRetentionService(storages *store.Storages, retention time.Duration) *retentionService {
	cfg := testServicesConfig()
	cfg.TombstoneRetention = retention

	s := NewRetentionService(storages, cfg, metrics.New(), NewKeyLock(), logger.Nop()).(*retentionService)
	s.now = func() time.Time { return time.UnixMilli(retentionNow) }
	return s
}

func TestRetentionService_PruneExpiredTombstones(t *testing.T) {
	storages := store.NewMemoryStorages()
	ctx := context.Background()

	put := func(user string, items ...models.DeletedItem) {
		_, err := storages.SnapshotRepository.Put(ctx, user, models.ChannelBasic, models.Snapshot{DeletedItems: items}, 0)
		require.NoError(t, err)
	}
	put("u1",
		models.NewDeletedItem("d1", models.TableOpenings, "a", retentionNow-time.Hour.Milliseconds()),
		models.NewDeletedItem("d2", models.TableOpenings, "b", retentionNow-1),
	)
	put("u2",
		models.NewDeletedItem("d3", models.TableChapters, "c", 1),
		models.NewDeletedItem("d4", models.TableChapters, "d", 2),
	)
	put("u3", models.NewDeletedItem("d5", models.TableSettings, "e", retentionNow))

	_, err := storages.SnapshotRepository.Put(ctx, "u4", models.ChannelFull, models.Snapshot{
		DeletedItems: []models.DeletedItem{models.NewDeletedItem("d6", models.TableOpenings, "f", 1)},
	}, 0)
	require.NoError(t, err)

	svc := newTestRetentionService(storages, time.Minute)

	n, err := svc.PruneExpiredTombstones(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	u1, err := storages.SnapshotRepository.Get(ctx, "u1", models.ChannelBasic)
	require.NoError(t, err)
	require.Len(t, u1.Snapshot.DeletedItems, 1)
	assert.Equal(t, "d2", u1.Snapshot.DeletedItems[0].ID)

	u3, err := storages.SnapshotRepository.Get(ctx, "u3", models.ChannelBasic)
	require.NoError(t, err)
	assert.Len(t, u3.Snapshot.DeletedItems, 1)

	u4, err := storages.SnapshotRepository.Get(ctx, "u4", models.ChannelFull)
	require.NoError(t, err)
	assert.Len(t, u4.Snapshot.DeletedItems, 1)

	again, err := svc.PruneExpiredTombstones(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestRetentionService_Disabled(t *testing.T) {
	storages, _, _ := newMockStorages(t)

	n, err := newTestRetentionService(storages, 0).PruneExpiredTombstones(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRetentionService_ContinuesAfterUserFailure(t *testing.T) {
	storages, snapshots, _ := newMockStorages(t)
	svc := newTestRetentionService(storages, time.Minute)

	expired := models.NewDeletedItem("d1", models.TableOpenings, "a", 1)

	snapshots.EXPECT().ListOwners(gomock.Any(), models.ChannelBasic).Return([]string{"bad", "good"}, nil)
	snapshots.EXPECT().Get(gomock.Any(), "bad", models.ChannelBasic).
		Return(store.StoredSnapshot{}, store.ErrScanningRow)
	snapshots.EXPECT().Get(gomock.Any(), "good", models.ChannelBasic).
		Return(store.StoredSnapshot{Snapshot: models.Snapshot{DeletedItems: []models.DeletedItem{expired}}, Version: 2}, nil)
	snapshots.EXPECT().Put(gomock.Any(), "good", models.ChannelBasic, gomock.Any(), int64(2)).
		DoAndReturn(func(_ context.Context, _ string, _ models.Channel, snap models.Snapshot, _ int64) (int64, error) {
			assert.Empty(t, snap.DeletedItems)
			return 3, nil
		})

	n, err := svc.PruneExpiredTombstones(context.Background())
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, ErrStoreFailure)
}

func TestRetentionService_ListOwnersFailure(t *testing.T) {
	storages, snapshots, _ := newMockStorages(t)
	snapshots.EXPECT().ListOwners(gomock.Any(), models.ChannelBasic).Return(nil, store.ErrExecutingQuery)

	_, err := newTestRetentionService(storages, time.Minute).PruneExpiredTombstones(context.Background())
	assert.ErrorIs(t, err, ErrStoreFailure)
}
