package financing

import (
	"context"

	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/trade"
)

// TransactionScope provides transactional access to financing repositories.
// All repository operations inside Execute share one database transaction and
// are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories a financing write touches.
//
// PurchaseOrderRepo is here because an allocation locks the purchase order row
// it funds; investments are never written without that lock held.
type TransactionalRepositories interface {
	InvestorRepo() financing.InvestorRepository
	InvestmentRepo() financing.InvestmentRepository
	InvestorPaymentRepo() financing.InvestorPaymentRepository
	LedgerReader() financing.LedgerReader
	PurchaseOrderRepo() trade.PurchaseOrderRepository
}

// NoOpTransactionScope runs fn against plain repositories without a transaction.
// It is meant for tests.
type NoOpTransactionScope struct {
	investorRepo        financing.InvestorRepository
	investmentRepo      financing.InvestmentRepository
	investorPaymentRepo financing.InvestorPaymentRepository
	ledger              financing.LedgerReader
	purchaseOrderRepo   trade.PurchaseOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	investorRepo financing.InvestorRepository,
	investmentRepo financing.InvestmentRepository,
	investorPaymentRepo financing.InvestorPaymentRepository,
	ledger financing.LedgerReader,
	purchaseOrderRepo trade.PurchaseOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		investorRepo:        investorRepo,
		investmentRepo:      investmentRepo,
		investorPaymentRepo: investorPaymentRepo,
		ledger:              ledger,
		purchaseOrderRepo:   purchaseOrderRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvestorRepo returns the investor repository.
func (s *NoOpTransactionScope) InvestorRepo() financing.InvestorRepository {
	return s.investorRepo
}

// InvestmentRepo returns the investment repository.
func (s *NoOpTransactionScope) InvestmentRepo() financing.InvestmentRepository {
	return s.investmentRepo
}

// InvestorPaymentRepo returns the investor payment repository.
func (s *NoOpTransactionScope) InvestorPaymentRepo() financing.InvestorPaymentRepository {
	return s.investorPaymentRepo
}

// LedgerReader returns the ledger reader.
func (s *NoOpTransactionScope) LedgerReader() financing.LedgerReader {
	return s.ledger
}

// PurchaseOrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return s.purchaseOrderRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
