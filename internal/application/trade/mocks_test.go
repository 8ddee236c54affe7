package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/inventory"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

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

// MockVendorPaymentRepository is a mock implementation of trade.PurchaseOrderPaymentRepository
type MockVendorPaymentRepository struct {
	mock.Mock
}

func (m *MockVendorPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrderPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrderPayment), args.Error(1)
}

func (m *MockVendorPaymentRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]trade.PurchaseOrderPayment, error) {
	args := m.Called(ctx, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseOrderPayment), args.Error(1)
}

func (m *MockVendorPaymentRepository) Save(ctx context.Context, payment *trade.PurchaseOrderPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockVendorPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

// MockInventoryItemRepository is a mock implementation of inventory.InventoryItemRepository
type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindAvailable(ctx context.Context) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) SaveBatch(ctx context.Context, items []inventory.InventoryItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

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

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var (
	_ trade.PurchaseOrderRepository        = (*MockPurchaseOrderRepository)(nil)
	_ trade.PurchaseOrderPaymentRepository = (*MockVendorPaymentRepository)(nil)
	_ trade.SalesOrderRepository           = (*MockSalesOrderRepository)(nil)
	_ inventory.InventoryItemRepository    = (*MockInventoryItemRepository)(nil)
	_ financing.InvestorRepository         = (*MockInvestorRepository)(nil)
	_ financing.InvestmentRepository       = (*MockInvestmentRepository)(nil)
	_ shared.EventPublisher                = (*MockEventPublisher)(nil)
)
