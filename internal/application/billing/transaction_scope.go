package billing

import (
	"context"

	"github.com/stationery/backoffice/internal/domain/billing"
	"github.com/stationery/backoffice/internal/domain/trade"
)

// TransactionScope provides transactional access to billing repositories.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories a billing write touches.
// Issuing a bill flips its sales order to BILLED in the same transaction.
type TransactionalRepositories interface {
	BillRepo() billing.BillRepository
	BillPaymentRepo() billing.PaymentRepository
	SalesOrderRepo() trade.SalesOrderRepository
}

// NoOpTransactionScope runs fn against plain repositories without a transaction.
// It is meant for tests.
type NoOpTransactionScope struct {
	billRepo       billing.BillRepository
	paymentRepo    billing.PaymentRepository
	salesOrderRepo trade.SalesOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(billRepo billing.BillRepository, paymentRepo billing.PaymentRepository, salesOrderRepo trade.SalesOrderRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		billRepo:       billRepo,
		paymentRepo:    paymentRepo,
		salesOrderRepo: salesOrderRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BillRepo returns the bill repository.
func (s *NoOpTransactionScope) BillRepo() billing.BillRepository {
	return s.billRepo
}

// BillPaymentRepo returns the buyer payment repository.
func (s *NoOpTransactionScope) BillPaymentRepo() billing.PaymentRepository {
	return s.paymentRepo
}

// SalesOrderRepo returns the sales order repository.
func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository {
	return s.salesOrderRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
