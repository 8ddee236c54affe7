package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBill(t *testing.T) *Bill {
	bill, err := NewBill("BILL-001", uuid.New(), "Acme School", []BillLineSpec{
		{InventoryItemID: uuid.New(), ProductName: "Notebook", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(60)},
		{InventoryItemID: uuid.New(), ProductName: "Pencil", Quantity: decimal.NewFromInt(40), UnitPrice: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	return bill
}

func TestNewBill(t *testing.T) {
	bill := newTestBill(t)

	assert.Len(t, bill.Items, 2)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, BillStatusUnpaid, bill.Status)
	for _, item := range bill.Items {
		assert.Equal(t, bill.ID, item.BillID)
	}

	_, err := NewBill("", uuid.New(), "x", nil)
	assert.Error(t, err)
	_, err = NewBill("B-2", uuid.New(), "x", nil)
	assert.Error(t, err)
}

func TestBill_RecordPayment(t *testing.T) {
	bill := newTestBill(t)

	p, err := bill.RecordPayment(decimal.NewFromInt(400), "cash", "")
	require.NoError(t, err)
	assert.Equal(t, bill.ID, p.BillID)
	assert.Equal(t, "CASH", p.Method)
	assert.Equal(t, BillStatusPartial, bill.Status)
	assert.True(t, bill.Outstanding().Equal(decimal.NewFromInt(600)))

	_, err = bill.RecordPayment(decimal.NewFromInt(601), "cash", "")
	assert.Error(t, err)
	_, err = bill.RecordPayment(decimal.Zero, "cash", "")
	assert.Error(t, err)

	_, err = bill.RecordPayment(decimal.NewFromInt(600), "bank_transfer", "TRX-9")
	require.NoError(t, err)
	assert.Equal(t, BillStatusPaid, bill.Status)
}
