package inventory

import (
	"context"

	"github.com/google/uuid"
)

// InventoryItemRepository persists inventory items
type InventoryItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	// FindByIDForUpdate loads the item and holds a row lock until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]InventoryItem, error)
	FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]InventoryItem, error)
	FindAvailable(ctx context.Context) ([]InventoryItem, error)
	Save(ctx context.Context, item *InventoryItem) error
	SaveBatch(ctx context.Context, items []InventoryItem) error
}
