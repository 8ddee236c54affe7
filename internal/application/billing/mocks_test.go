package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/billing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockBillRepository is a mock implementation of billing.BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]billing.Bill, error) {
	args := m.Called(ctx, salesOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) ExistsByBillNumber(ctx context.Context, billNumber string) (bool, error) {
	args := m.Called(ctx, billNumber)
	return args.Bool(0), args.Error(1)
}

// MockBillPaymentRepository is a mock implementation of billing.PaymentRepository
type MockBillPaymentRepository struct {
	mock.Mock
}

func (m *MockBillPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockBillPaymentRepository) FindByBill(ctx context.Context, billID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Payment), args.Error(1)
}

// MockSalesOrderRepository is a mock implementation of trade.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]trade.SalesOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

var (
	_ billing.BillRepository     = (*MockBillRepository)(nil)
	_ billing.PaymentRepository  = (*MockBillPaymentRepository)(nil)
	_ trade.SalesOrderRepository = (*MockSalesOrderRepository)(nil)
)
