package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/billing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type billFixture struct {
	billRepo       *MockBillRepository
	paymentRepo    *MockBillPaymentRepository
	salesOrderRepo *MockSalesOrderRepository
	svc            *BillService
}

func newBillFixture() *billFixture {
	f := &billFixture{
		billRepo:       new(MockBillRepository),
		paymentRepo:    new(MockBillPaymentRepository),
		salesOrderRepo: new(MockSalesOrderRepository),
	}
	scope := NewNoOpTransactionScope(f.billRepo, f.paymentRepo, f.salesOrderRepo)
	f.svc = NewBillService(scope, f.billRepo, f.paymentRepo, zap.NewNop())
	return f
}

func newSalesOrder(t *testing.T) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder("SO-1", "City School", []trade.SalesLineSpec{
		{InventoryItemID: uuid.New(), ProductName: "Blue pens", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5)},
		{InventoryItemID: uuid.New(), ProductName: "Notebooks", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(25)},
	})
	require.NoError(t, err)
	return order
}

func newBill(t *testing.T) *billing.Bill {
	t.Helper()
	bill, err := billing.NewBill("BILL-1", uuid.New(), "City School", []billing.BillLineSpec{
		{InventoryItemID: uuid.New(), ProductName: "Blue pens", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	return bill
}

func TestBillService_Issue(t *testing.T) {
	f := newBillFixture()
	order := newSalesOrder(t)
	f.salesOrderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	f.billRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Bill")).Return(nil)
	f.salesOrderRepo.On("Save", mock.Anything, order).Return(nil)

	resp, err := f.svc.Issue(context.Background(), IssueBillRequest{SalesOrderID: order.ID})

	require.NoError(t, err)
	assert.Equal(t, "UNPAID", resp.Status)
	assert.Equal(t, "City School", resp.BuyerName)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, order.Lines[0].InventoryItemID, resp.Items[0].InventoryItemID)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, trade.SalesOrderStatusBilled, order.Status)
	f.billRepo.AssertNotCalled(t, "ExistsByBillNumber", mock.Anything, mock.Anything)
}

func TestBillService_Issue_AlreadyBilled(t *testing.T) {
	f := newBillFixture()
	order := newSalesOrder(t)
	require.NoError(t, order.MarkBilled())
	f.salesOrderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.Issue(context.Background(), IssueBillRequest{SalesOrderID: order.ID})

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	f.billRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBillService_Issue_BillNumberTaken(t *testing.T) {
	f := newBillFixture()
	f.billRepo.On("ExistsByBillNumber", mock.Anything, "BILL-9").Return(true, nil)

	_, err := f.svc.Issue(context.Background(), IssueBillRequest{SalesOrderID: uuid.New(), BillNumber: "BILL-9"})

	assert.ErrorIs(t, err, billing.ErrBillNumberTaken)
	f.salesOrderRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
}

func TestBillService_Issue_SalesOrderNotFound(t *testing.T) {
	f := newBillFixture()
	id := uuid.New()
	f.salesOrderRepo.On("FindByIDForUpdate", mock.Anything, id).Return(nil, trade.ErrSalesOrderNotFound)

	_, err := f.svc.Issue(context.Background(), IssueBillRequest{SalesOrderID: id})

	assert.True(t, shared.IsNotFound(err))
}

func TestBillService_RecordPayment(t *testing.T) {
	f := newBillFixture()
	bill := newBill(t)
	f.billRepo.On("FindByIDForUpdate", mock.Anything, bill.ID).Return(bill, nil)
	f.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)
	f.billRepo.On("Save", mock.Anything, bill).Return(nil)

	resp, err := f.svc.RecordPayment(context.Background(), bill.ID, RecordBillPaymentRequest{
		Amount: decimal.NewFromInt(40),
		Method: "cash",
	})

	require.NoError(t, err)
	assert.Equal(t, "PARTIAL", resp.BillStatus)
	assert.Equal(t, "CASH", resp.Payment.Method)
	assert.True(t, resp.Outstanding.Equal(decimal.NewFromInt(60)))
}

func TestBillService_RecordPayment_ExceedsOutstanding(t *testing.T) {
	f := newBillFixture()
	bill := newBill(t)
	f.billRepo.On("FindByIDForUpdate", mock.Anything, bill.ID).Return(bill, nil)

	_, err := f.svc.RecordPayment(context.Background(), bill.ID, RecordBillPaymentRequest{
		Amount: decimal.NewFromInt(101),
		Method: "CASH",
	})

	assert.ErrorIs(t, err, shared.NewDomainError("PAYMENT_EXCEEDS_BALANCE", ""))
	f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBillService_GetByID(t *testing.T) {
	f := newBillFixture()
	bill := newBill(t)
	payment, err := bill.RecordPayment(decimal.NewFromInt(100), "CASH", "")
	require.NoError(t, err)
	f.billRepo.On("FindByID", mock.Anything, bill.ID).Return(bill, nil)
	f.paymentRepo.On("FindByBill", mock.Anything, bill.ID).Return([]billing.Payment{*payment}, nil)

	resp, err := f.svc.GetByID(context.Background(), bill.ID)

	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.Status)
	require.Len(t, resp.Payments, 1)
	assert.True(t, resp.Outstanding.IsZero())
}
