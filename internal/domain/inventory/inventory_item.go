package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// InventoryItem is stock produced by receiving a purchase order. Its parentage
// (PurchaseOrderID, PurchaseOrderItemID) never changes after creation.
type InventoryItem struct {
	shared.BaseAggregateRoot
	PurchaseOrderID     uuid.UUID
	PurchaseOrderItemID uuid.UUID
	ProductName         string
	Quantity            decimal.Decimal
	AvailableQuantity   decimal.Decimal
	PurchasePrice       decimal.Decimal
}

// NewInventoryItem creates stock for a received purchase order line
func NewInventoryItem(purchaseOrderID, purchaseOrderItemID uuid.UUID, productName string, quantity, purchasePrice decimal.Decimal) (*InventoryItem, error) {
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE_ORDER", "Purchase order ID cannot be empty")
	}
	if strings.TrimSpace(productName) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Purchase price cannot be negative")
	}
	return &InventoryItem{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		PurchaseOrderID:     purchaseOrderID,
		PurchaseOrderItemID: purchaseOrderItemID,
		ProductName:         strings.TrimSpace(productName),
		Quantity:            quantity,
		AvailableQuantity:   quantity,
		PurchasePrice:       purchasePrice,
	}, nil
}

// CanFulfill checks whether enough stock is available
func (i *InventoryItem) CanFulfill(quantity decimal.Decimal) bool {
	return i.AvailableQuantity.GreaterThanOrEqual(quantity)
}

// Reserve takes quantity out of available stock for a sales order
func (i *InventoryItem) Reserve(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !i.CanFulfill(quantity) {
		return shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Insufficient stock for %s: requested %s, available %s",
			i.ProductName, quantity.String(), i.AvailableQuantity.String()).
			WithDetails(map[string]any{
				"inventory_item_id": i.ID.String(),
				"requested":         quantity.String(),
				"available":         i.AvailableQuantity.String(),
			})
	}
	i.AvailableQuantity = i.AvailableQuantity.Sub(quantity)
	i.Touch()
	i.IncrementVersion()
	return nil
}

// Release returns reserved quantity to available stock
func (i *InventoryItem) Release(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.AvailableQuantity.Add(quantity).GreaterThan(i.Quantity) {
		return shared.NewDomainError("INVALID_QUANTITY", "Cannot release more than was received")
	}
	i.AvailableQuantity = i.AvailableQuantity.Add(quantity)
	i.Touch()
	i.IncrementVersion()
	return nil
}

// StockValue is the purchase cost of the units still available
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.AvailableQuantity.Mul(i.PurchasePrice)
}
