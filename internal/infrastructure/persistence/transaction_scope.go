package persistence

import (
	"context"

	billingapp "github.com/stationery/backoffice/internal/application/billing"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	tradeapp "github.com/stationery/backoffice/internal/application/trade"
	"github.com/stationery/backoffice/internal/domain/billing"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/inventory"
	"github.com/stationery/backoffice/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope runs repository work inside one GORM transaction.
// The same scope serves the financing, trade and billing services; each sees
// the repositories its own TransactionalRepositories interface names.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

func (s *GormTransactionScope) run(ctx context.Context, fn func(repos *gormTransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// Financing adapts the scope to the financing services.
func (s *GormTransactionScope) Financing() financingapp.TransactionScope {
	return financingScope{s}
}

// Trade adapts the scope to the trade services.
func (s *GormTransactionScope) Trade() tradeapp.TransactionScope {
	return tradeScope{s}
}

// Billing adapts the scope to the billing services.
func (s *GormTransactionScope) Billing() billingapp.TransactionScope {
	return billingScope{s}
}

type financingScope struct{ *GormTransactionScope }

func (s financingScope) Execute(ctx context.Context, fn func(repos financingapp.TransactionalRepositories) error) error {
	return s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type tradeScope struct{ *GormTransactionScope }

func (s tradeScope) Execute(ctx context.Context, fn func(repos tradeapp.TransactionalRepositories) error) error {
	return s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type billingScope struct{ *GormTransactionScope }

func (s billingScope) Execute(ctx context.Context, fn func(repos billingapp.TransactionalRepositories) error) error {
	return s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// InvestorRepo returns the investor repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InvestorRepo() financing.InvestorRepository {
	return NewGormInvestorRepository(r.tx)
}

// InvestmentRepo returns the investment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InvestmentRepo() financing.InvestmentRepository {
	return NewGormInvestmentRepository(r.tx)
}

// InvestorPaymentRepo returns the payout repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InvestorPaymentRepo() financing.InvestorPaymentRepository {
	return NewGormInvestorPaymentRepository(r.tx)
}

// LedgerReader returns a ledger reader that sees the current transaction's writes.
func (r *gormTransactionalRepositories) LedgerReader() financing.LedgerReader {
	return NewGormLedgerReader(r.tx)
}

// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

// PurchaseOrderPaymentRepo returns the vendor payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseOrderPaymentRepo() trade.PurchaseOrderPaymentRepository {
	return NewGormPurchaseOrderPaymentRepository(r.tx)
}

// SalesOrderRepo returns the sales order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SalesOrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// InventoryItemRepo returns the inventory item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InventoryItemRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

// BillRepo returns the bill repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BillRepo() billing.BillRepository {
	return NewGormBillRepository(r.tx)
}

// BillPaymentRepo returns the buyer payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BillPaymentRepo() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

var (
	_ financingapp.TransactionScope          = financingScope{}
	_ tradeapp.TransactionScope              = tradeScope{}
	_ billingapp.TransactionScope            = billingScope{}
	_ financingapp.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ tradeapp.TransactionalRepositories     = (*gormTransactionalRepositories)(nil)
	_ billingapp.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
)
