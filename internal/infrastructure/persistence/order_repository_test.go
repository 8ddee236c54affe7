package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/billing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchaseOrder(t *testing.T, number string) *trade.PurchaseOrder {
	t.Helper()
	order, err := trade.NewPurchaseOrder(number, "Acme Paper", []trade.LineSpec{
		{ProductName: "A4 paper", Quantity: d("10"), UnitCost: d("4.50")},
		{ProductName: "Pens", Quantity: d("100"), UnitCost: d("0.30")},
	})
	require.NoError(t, err)
	return order
}

func TestGormPurchaseOrderRepository_SaveAndFind(t *testing.T) {
	repo := NewGormPurchaseOrderRepository(newTestDB(t))
	ctx := context.Background()

	order := newPurchaseOrder(t, "PO-1")
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-1", found.OrderNumber)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "A4 paper", found.Items[0].ProductName)
	assert.True(t, order.TotalAmount.Equal(found.TotalAmount))

	// replacing items rewrites the item rows
	require.NoError(t, found.ReplaceItems([]trade.LineSpec{{ProductName: "Stapler", Quantity: d("2"), UnitCost: d("12")}}))
	require.NoError(t, repo.Save(ctx, found))

	locked, err := repo.FindByIDForUpdate(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, locked.Items, 1)
	assert.True(t, d("24").Equal(locked.TotalAmount))

	exists, err := repo.ExistsByOrderNumber(ctx, "PO-1")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, trade.ErrPurchaseOrderNotFound)
}

func TestGormPurchaseOrderRepository_FindAll(t *testing.T) {
	repo := NewGormPurchaseOrderRepository(newTestDB(t))
	ctx := context.Background()

	first := newPurchaseOrder(t, "PO-1")
	require.NoError(t, repo.Save(ctx, first))
	second := newPurchaseOrder(t, "PO-2")
	require.NoError(t, second.Approve())
	require.NoError(t, repo.Save(ctx, second))

	orders, total, err := repo.FindAll(ctx, trade.PurchaseOrderFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)

	status := trade.PurchaseOrderStatusApproved
	orders, total, err = repo.FindAll(ctx, trade.PurchaseOrderFilter{Filter: shared.DefaultFilter(), Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Len(t, orders[0].Items, 2)
}

func TestGormSalesOrderRepository_SaveAndFind(t *testing.T) {
	repo := NewGormSalesOrderRepository(newTestDB(t))
	ctx := context.Background()
	itemID := uuid.New()

	order, err := trade.NewSalesOrder("SO-1", "City School", []trade.SalesLineSpec{
		{InventoryItemID: itemID, ProductName: "Pens", Quantity: d("20"), UnitPrice: d("0.50")},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Lines, 1)
	assert.Equal(t, itemID, found.Lines[0].InventoryItemID)
	assert.True(t, d("10").Equal(found.TotalAmount))

	orders, total, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, orders, 1)

	exists, err := repo.ExistsByOrderNumber(ctx, "SO-2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormBillRepository_ItemsAreFixedAtIssue(t *testing.T) {
	db := newTestDB(t)
	bills := NewGormBillRepository(db)
	payments := NewGormPaymentRepository(db)
	ctx := context.Background()

	bill, err := billing.NewBill("B-1", uuid.New(), "City School", []billing.BillLineSpec{
		{InventoryItemID: uuid.New(), ProductName: "Pens", Quantity: d("20"), UnitPrice: d("0.50")},
		{InventoryItemID: uuid.New(), ProductName: "Paper", Quantity: d("1"), UnitPrice: d("5")},
	})
	require.NoError(t, err)
	require.NoError(t, bills.Save(ctx, bill))

	payment, err := bill.RecordPayment(d("4"), "CASH", "")
	require.NoError(t, err)
	require.NoError(t, payments.Create(ctx, payment))
	require.NoError(t, bills.Save(ctx, bill))

	found, err := bills.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, found.Items, 2)
	assert.True(t, d("4").Equal(found.PaidAmount))
	assert.Equal(t, billing.BillStatusPartial, found.Status)

	bySales, err := bills.FindBySalesOrder(ctx, bill.SalesOrderID)
	require.NoError(t, err)
	require.Len(t, bySales, 1)
	assert.Len(t, bySales[0].Items, 2)

	recorded, err := payments.FindByBill(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.True(t, d("4").Equal(recorded[0].Amount))

	taken, err := bills.ExistsByBillNumber(ctx, "B-1")
	require.NoError(t, err)
	assert.True(t, taken)
}
