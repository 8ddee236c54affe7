package trade

import (
	"context"

	financingapp "github.com/stationery/backoffice/internal/application/financing"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/inventory"
	"github.com/stationery/backoffice/internal/domain/trade"
)

// TransactionScope provides transactional access to trade repositories.
// Purchase order writes run the allocator in the same transaction, so the
// scope also hands out the financing repositories.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories a trade write touches.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	financingapp.TransactionalRepositories
	PurchaseOrderPaymentRepo() trade.PurchaseOrderPaymentRepository
	SalesOrderRepo() trade.SalesOrderRepository
	InventoryItemRepo() inventory.InventoryItemRepository
}

// NoOpTransactionScope runs fn against plain repositories without a transaction.
// It is meant for tests.
type NoOpTransactionScope struct {
	*financingapp.NoOpTransactionScope
	paymentRepo    trade.PurchaseOrderPaymentRepository
	salesOrderRepo trade.SalesOrderRepository
	inventoryRepo  inventory.InventoryItemRepository
}

// NoOpRepositories groups the repositories handed to NewNoOpTransactionScope
type NoOpRepositories struct {
	Investors        financing.InvestorRepository
	Investments      financing.InvestmentRepository
	InvestorPayments financing.InvestorPaymentRepository
	Ledger           financing.LedgerReader
	PurchaseOrders   trade.PurchaseOrderRepository
	VendorPayments   trade.PurchaseOrderPaymentRepository
	SalesOrders      trade.SalesOrderRepository
	InventoryItems   inventory.InventoryItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(r NoOpRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		NoOpTransactionScope: financingapp.NewNoOpTransactionScope(r.Investors, r.Investments, r.InvestorPayments, r.Ledger, r.PurchaseOrders),
		paymentRepo:          r.VendorPayments,
		salesOrderRepo:       r.SalesOrders,
		inventoryRepo:        r.InventoryItems,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PurchaseOrderPaymentRepo returns the vendor payment repository.
func (s *NoOpTransactionScope) PurchaseOrderPaymentRepo() trade.PurchaseOrderPaymentRepository {
	return s.paymentRepo
}

// SalesOrderRepo returns the sales order repository.
func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository {
	return s.salesOrderRepo
}

// InventoryItemRepo returns the inventory item repository.
func (s *NoOpTransactionScope) InventoryItemRepo() inventory.InventoryItemRepository {
	return s.inventoryRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
