package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// PurchaseOrderFilter narrows purchase order listings
type PurchaseOrderFilter struct {
	shared.Filter
	Status *PurchaseOrderStatus
}

// PurchaseOrderRepository persists purchase orders with their items
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	// FindByIDForUpdate loads the order and holds a row lock until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter PurchaseOrderFilter) ([]PurchaseOrder, int64, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}

// PurchaseOrderPaymentRepository persists vendor payments
type PurchaseOrderPaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderPayment, error)
	FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]PurchaseOrderPayment, error)
	Save(ctx context.Context, payment *PurchaseOrderPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SalesOrderRepository persists resale orders with their lines
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	// FindByIDForUpdate loads the order and holds a row lock until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, int64, error)
	Save(ctx context.Context, order *SalesOrder) error
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}
