package financing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockInvestorRepository is a mock implementation of financing.InvestorRepository
type MockInvestorRepository struct {
	mock.Mock
}

func (m *MockInvestorRepository) FindByID(ctx context.Context, id uuid.UUID) (*financing.Investor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financing.Investor), args.Error(1)
}

func (m *MockInvestorRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*financing.Investor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financing.Investor), args.Error(1)
}

func (m *MockInvestorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]financing.Investor, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.Investor), args.Error(1)
}

func (m *MockInvestorRepository) FindAll(ctx context.Context, filter financing.InvestorFilter) ([]financing.Investor, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]financing.Investor), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvestorRepository) ListAll(ctx context.Context) ([]financing.Investor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.Investor), args.Error(1)
}

func (m *MockInvestorRepository) Save(ctx context.Context, investor *financing.Investor) error {
	args := m.Called(ctx, investor)
	return args.Error(0)
}

func (m *MockInvestorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvestorRepository) EnsureHouse(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInvestmentRepository is a mock implementation of financing.InvestmentRepository
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]financing.Investment, error) {
	args := m.Called(ctx, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) FindByPurchaseOrders(ctx context.Context, purchaseOrderIDs []uuid.UUID) ([]financing.Investment, error) {
	args := m.Called(ctx, purchaseOrderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) FindByInvestor(ctx context.Context, investorID uuid.UUID) ([]financing.Investment, error) {
	args := m.Called(ctx, investorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) FindAll(ctx context.Context) ([]financing.Investment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) CountByInvestor(ctx context.Context, investorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, investorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvestmentRepository) ReplaceForPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID, investments []financing.Investment) error {
	args := m.Called(ctx, purchaseOrderID, investments)
	return args.Error(0)
}

// MockInvestorPaymentRepository is a mock implementation of financing.InvestorPaymentRepository
type MockInvestorPaymentRepository struct {
	mock.Mock
}

func (m *MockInvestorPaymentRepository) Create(ctx context.Context, payment *financing.InvestorPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockInvestorPaymentRepository) FindByInvestor(ctx context.Context, investorID uuid.UUID, filter shared.Filter) ([]financing.InvestorPayment, int64, error) {
	args := m.Called(ctx, investorID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]financing.InvestorPayment), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvestorPaymentRepository) SumByInvestor(ctx context.Context, investorID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, investorID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvestorPaymentRepository) SumAllByInvestor(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]decimal.Decimal), args.Error(1)
}

// MockLedgerReader is a mock implementation of financing.LedgerReader
type MockLedgerReader struct {
	mock.Mock
}

func (m *MockLedgerReader) StockLotsByPurchaseOrders(ctx context.Context, purchaseOrderIDs []uuid.UUID) ([]financing.StockLot, error) {
	args := m.Called(ctx, purchaseOrderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.StockLot), args.Error(1)
}

func (m *MockLedgerReader) SaleLinesByInventoryItems(ctx context.Context, inventoryItemIDs []uuid.UUID) ([]financing.SaleLine, error) {
	args := m.Called(ctx, inventoryItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.SaleLine), args.Error(1)
}

func (m *MockLedgerReader) BillCollections(ctx context.Context, billIDs []uuid.UUID) ([]financing.BillCollection, error) {
	args := m.Called(ctx, billIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.BillCollection), args.Error(1)
}

func (m *MockLedgerReader) OrderCostLines(ctx context.Context, salesOrderID uuid.UUID) ([]financing.OrderCostLine, error) {
	args := m.Called(ctx, salesOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financing.OrderCostLine), args.Error(1)
}

func (m *MockLedgerReader) OrderBillTotals(ctx context.Context, salesOrderID uuid.UUID) ([]decimal.Decimal, error) {
	args := m.Called(ctx, salesOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}

// MockPurchaseOrderRepository is a mock implementation of trade.PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter trade.PurchaseOrderFilter) ([]trade.PurchaseOrder, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]trade.PurchaseOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
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

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var (
	_ financing.InvestorRepository        = (*MockInvestorRepository)(nil)
	_ financing.InvestmentRepository      = (*MockInvestmentRepository)(nil)
	_ financing.InvestorPaymentRepository = (*MockInvestorPaymentRepository)(nil)
	_ financing.LedgerReader              = (*MockLedgerReader)(nil)
	_ trade.PurchaseOrderRepository       = (*MockPurchaseOrderRepository)(nil)
	_ trade.SalesOrderRepository          = (*MockSalesOrderRepository)(nil)
	_ shared.IdempotencyStore             = (*MockIdempotencyStore)(nil)
	_ shared.EventPublisher               = (*MockEventPublisher)(nil)
)
