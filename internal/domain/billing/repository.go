package billing

import (
	"context"

	"github.com/google/uuid"
)

// BillRepository persists bills with their items
type BillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	// FindByIDForUpdate loads the bill and holds a row lock until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]Bill, error)
	Save(ctx context.Context, bill *Bill) error
	ExistsByBillNumber(ctx context.Context, billNumber string) (bool, error)
}

// PaymentRepository persists buyer payments
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByBill(ctx context.Context, billID uuid.UUID) ([]Payment, error)
}
