package financing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// InvestorFilter narrows investor listings
type InvestorFilter struct {
	shared.Filter
	Active       *bool
	IncludeHouse bool
}

// InvestorRepository persists investors
type InvestorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Investor, error)
	// FindByIDForUpdate loads the investor and holds a row lock until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Investor, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Investor, error)
	FindAll(ctx context.Context, filter InvestorFilter) ([]Investor, int64, error)
	ListAll(ctx context.Context) ([]Investor, error)
	Save(ctx context.Context, investor *Investor) error
	Delete(ctx context.Context, id uuid.UUID) error
	// EnsureHouse inserts the reserved house investor if it does not exist yet
	EnsureHouse(ctx context.Context, id uuid.UUID) error
}

// InvestmentRepository persists investment sets
type InvestmentRepository interface {
	FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]Investment, error)
	FindByPurchaseOrders(ctx context.Context, purchaseOrderIDs []uuid.UUID) ([]Investment, error)
	FindByInvestor(ctx context.Context, investorID uuid.UUID) ([]Investment, error)
	FindAll(ctx context.Context) ([]Investment, error)
	CountByInvestor(ctx context.Context, investorID uuid.UUID) (int64, error)
	// ReplaceForPurchaseOrder deletes the current set and inserts the given one
	ReplaceForPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID, investments []Investment) error
}

// InvestorPaymentRepository persists payouts; there is no update or delete path
type InvestorPaymentRepository interface {
	Create(ctx context.Context, payment *InvestorPayment) error
	FindByInvestor(ctx context.Context, investorID uuid.UUID, filter shared.Filter) ([]InvestorPayment, int64, error)
	SumByInvestor(ctx context.Context, investorID uuid.UUID) (decimal.Decimal, error)
	SumAllByInvestor(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error)
}

// LedgerReader exposes the inventory and billing rows the calculators walk.
// Those rows belong to other contexts and are only ever read here.
type LedgerReader interface {
	StockLotsByPurchaseOrders(ctx context.Context, purchaseOrderIDs []uuid.UUID) ([]StockLot, error)
	SaleLinesByInventoryItems(ctx context.Context, inventoryItemIDs []uuid.UUID) ([]SaleLine, error)
	BillCollections(ctx context.Context, billIDs []uuid.UUID) ([]BillCollection, error)
	OrderCostLines(ctx context.Context, salesOrderID uuid.UUID) ([]OrderCostLine, error)
	OrderBillTotals(ctx context.Context, salesOrderID uuid.UUID) ([]decimal.Decimal, error)
}
