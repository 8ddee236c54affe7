package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/inventory"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveItems(t *testing.T, repo *GormInventoryItemRepository, purchaseOrderID uuid.UUID, qty ...string) []inventory.InventoryItem {
	t.Helper()
	items := make([]inventory.InventoryItem, len(qty))
	for i, q := range qty {
		item, err := inventory.NewInventoryItem(purchaseOrderID, uuid.New(), "Pens", d(q), d("0.30"))
		require.NoError(t, err)
		items[i] = *item
	}
	require.NoError(t, repo.SaveBatch(context.Background(), items))
	return items
}

func TestGormInventoryItemRepository_OptimisticSave(t *testing.T) {
	repo := NewGormInventoryItemRepository(newTestDB(t))
	ctx := context.Background()
	items := receiveItems(t, repo, uuid.New(), "100")

	first, err := repo.FindByID(ctx, items[0].ID)
	require.NoError(t, err)
	stale, err := repo.FindByID(ctx, items[0].ID)
	require.NoError(t, err)

	require.NoError(t, first.Reserve(d("30")))
	require.NoError(t, repo.Save(ctx, first))

	// a second writer holding the old version loses
	require.NoError(t, stale.Reserve(d("80")))
	err = repo.Save(ctx, stale)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))

	stored, err := repo.FindByIDForUpdate(ctx, items[0].ID)
	require.NoError(t, err)
	assert.True(t, d("70").Equal(stored.AvailableQuantity))
	assert.Equal(t, first.Version, stored.Version)
}

func TestGormInventoryItemRepository_Queries(t *testing.T) {
	repo := NewGormInventoryItemRepository(newTestDB(t))
	ctx := context.Background()
	po := uuid.New()
	items := receiveItems(t, repo, po, "5", "3")
	receiveItems(t, repo, uuid.New(), "7")

	byPO, err := repo.FindByPurchaseOrder(ctx, po)
	require.NoError(t, err)
	assert.Len(t, byPO, 2)

	drained, err := repo.FindByID(ctx, items[1].ID)
	require.NoError(t, err)
	require.NoError(t, drained.Reserve(d("3")))
	require.NoError(t, repo.Save(ctx, drained))

	available, err := repo.FindAvailable(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 2)
	for _, item := range available {
		assert.NotEqual(t, items[1].ID, item.ID)
	}

	found, err := repo.FindByIDs(ctx, []uuid.UUID{items[0].ID, items[1].ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, inventory.ErrInventoryItemNotFound)
}
