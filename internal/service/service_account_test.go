package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/models"
)

func newTestAccountService(storages *store.Storages) AccountService {
	return NewAccountService(storages, testServicesConfig(), metrics.New(), NewKeyLock(), logger.Nop())
}

func TestAccountService_DeleteAccount(t *testing.T) {
	storages := store.NewMemoryStorages()
	svc := newTestAccountService(storages)
	ctx := context.Background()

	for _, ch := range []models.Channel{models.ChannelBasic, models.ChannelFull} {
		_, err := storages.SnapshotRepository.Put(ctx, testUser, ch, models.Snapshot{
			Openings: []models.Entity{models.NewEntity("o1", 1)},
		}, 0)
		require.NoError(t, err)
	}
	seedVariants(t, storages, 3)
	_, err := storages.SnapshotRepository.Put(ctx, "someone-else", models.ChannelBasic, models.Snapshot{}, 0)
	require.NoError(t, err)

	resp, err := svc.DeleteAccount(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, models.SuccessResponse{Success: true, Message: "User data successfully deleted"}, resp)

	for _, ch := range []models.Channel{models.ChannelBasic, models.ChannelFull} {
		_, err = storages.SnapshotRepository.Get(ctx, testUser, ch)
		assert.ErrorIs(t, err, store.ErrNotFound)
	}
	_, total, err := storages.VariantRepository.Page(ctx, testUser, models.VariantPageQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = storages.SnapshotRepository.Get(ctx, "someone-else", models.ChannelBasic)
	assert.NoError(t, err)
}

func TestAccountService_DeleteAccount_NoData(t *testing.T) {
	svc := newTestAccountService(store.NewMemoryStorages())

	resp, err := svc.DeleteAccount(context.Background(), testUser)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestAccountService_DeleteAccount_Errors(t *testing.T) {
	t.Run("no user", func(t *testing.T) {
		storages, _, _ := newMockStorages(t)
		_, err := newTestAccountService(storages).DeleteAccount(context.Background(), "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("store failure", func(t *testing.T) {
		storages, snapshots, _ := newMockStorages(t)
		snapshots.EXPECT().Delete(gomock.Any(), testUser).Return(store.ErrExecutingStatement)

		_, err := newTestAccountService(storages).DeleteAccount(context.Background(), testUser)
		assert.ErrorIs(t, err, ErrStoreFailure)
	})

	t.Run("transient failure is retried", func(t *testing.T) {
		storages, snapshots, variants := newMockStorages(t)
		gomock.InOrder(
			snapshots.EXPECT().Delete(gomock.Any(), testUser).Return(nil),
			variants.EXPECT().DeleteAll(gomock.Any(), testUser).
				Return(int64(0), store.ErrTransient),
			snapshots.EXPECT().Delete(gomock.Any(), testUser).Return(nil),
			variants.EXPECT().DeleteAll(gomock.Any(), testUser).Return(int64(4), nil),
		)

		resp, err := newTestAccountService(storages).DeleteAccount(context.Background(), testUser)
		require.NoError(t, err)
		assert.True(t, resp.Success)
	})
}
