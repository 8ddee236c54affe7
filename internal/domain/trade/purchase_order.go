package trade

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a vendor purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "PENDING"
	PurchaseOrderStatusApproved  PurchaseOrderStatus = "APPROVED"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ORDERED"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusPending, PurchaseOrderStatusApproved, PurchaseOrderStatusOrdered,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusReceived || s == PurchaseOrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusPending:
		return target == PurchaseOrderStatusApproved || target == PurchaseOrderStatusOrdered || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusApproved:
		return target == PurchaseOrderStatusOrdered || target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusOrdered:
		return target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	}
	return false
}

// PurchaseOrderItem is a line the vendor will deliver
type PurchaseOrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductName string
	Description string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	// TaxRate is a percentage applied to the line subtotal
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// NewPurchaseOrderItem validates a line and computes its amounts
func NewPurchaseOrderItem(orderID uuid.UUID, productName, description string, quantity, unitCost, taxRate decimal.Decimal) (*PurchaseOrderItem, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	subtotal := quantity.Mul(unitCost).Round(2)
	tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	return &PurchaseOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductName: productName,
		Description: description,
		Quantity:    quantity,
		UnitCost:    unitCost,
		TaxRate:     taxRate,
		Subtotal:    subtotal,
		TaxAmount:   tax,
		Total:       subtotal.Add(tax),
	}, nil
}

// LineSpec describes a line to place on a purchase order
type LineSpec struct {
	ProductName string
	Description string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	TaxRate     decimal.Decimal
}

// PurchaseOrder is a vendor order. Its TotalAmount is the funding target
// that investor contributions are reconciled against.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string
	VendorName   string
	VendorPhone  string
	Items        []PurchaseOrderItem
	Subtotal     decimal.Decimal
	TotalTax     decimal.Decimal
	TotalAmount  decimal.Decimal
	PaidAmount   decimal.Decimal
	DueAmount    decimal.Decimal
	Status       PurchaseOrderStatus
	Notes        string
	OrderDate    time.Time
	ReceivedAt   *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// NewPurchaseOrder creates a pending purchase order with its lines
func NewPurchaseOrder(orderNumber, vendorName string, lines []LineSpec) (*PurchaseOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if strings.TrimSpace(vendorName) == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor name cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		VendorName:        strings.TrimSpace(vendorName),
		Status:            PurchaseOrderStatusPending,
		PaidAmount:        decimal.Zero,
	}
	order.OrderDate = order.CreatedAt
	if err := order.setLines(lines); err != nil {
		return nil, err
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))
	return order, nil
}

// ReplaceItems swaps the order's lines; only allowed before the order is terminal
func (o *PurchaseOrder) ReplaceItems(lines []LineSpec) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainErrorf("INVALID_STATE", "Cannot modify order in %s status", o.Status)
	}
	previous := o.Items
	if err := o.setLines(lines); err != nil {
		o.Items = previous
		o.recalculateTotals()
		return err
	}
	if o.TotalAmount.LessThan(o.PaidAmount) {
		err := shared.NewDomainErrorf("INVALID_AMOUNT", "Order total %s cannot be less than amount already paid %s",
			o.TotalAmount.StringFixed(2), o.PaidAmount.StringFixed(2))
		o.Items = previous
		o.recalculateTotals()
		return err
	}
	o.Touch()
	o.IncrementVersion()
	return nil
}

func (o *PurchaseOrder) setLines(lines []LineSpec) error {
	if len(lines) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Purchase order must have at least one item")
	}
	items := make([]PurchaseOrderItem, 0, len(lines))
	for idx, l := range lines {
		item, err := NewPurchaseOrderItem(o.ID, l.ProductName, l.Description, l.Quantity, l.UnitCost, l.TaxRate)
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) {
				return de.WithDetails(map[string]any{"line": idx})
			}
			return err
		}
		items = append(items, *item)
	}
	o.Items = items
	o.recalculateTotals()
	return nil
}

// SetVendorPhone sets the vendor contact number
func (o *PurchaseOrder) SetVendorPhone(phone string) {
	o.VendorPhone = strings.TrimSpace(phone)
}

// SetNotes sets free-form notes
func (o *PurchaseOrder) SetNotes(notes string) {
	o.Notes = notes
}

// Approve moves a pending order to APPROVED
func (o *PurchaseOrder) Approve() error {
	return o.transition(PurchaseOrderStatusApproved)
}

// MarkOrdered records that the order was placed with the vendor
func (o *PurchaseOrder) MarkOrdered() error {
	return o.transition(PurchaseOrderStatusOrdered)
}

func (o *PurchaseOrder) transition(target PurchaseOrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainErrorf("INVALID_STATE", "Cannot move order from %s to %s", o.Status, target)
	}
	o.Status = target
	o.Touch()
	o.IncrementVersion()
	return nil
}

// ReceivedLine maps a delivered line to the inventory item created for it
type ReceivedLine struct {
	PurchaseOrderItemID uuid.UUID       `json:"purchase_order_item_id"`
	InventoryItemID     uuid.UUID       `json:"inventory_item_id"`
	ProductName         string          `json:"product_name"`
	Quantity            decimal.Decimal `json:"quantity"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
}

// Receive marks the whole order as delivered. The caller supplies the ids of
// the inventory items created for each line so the event carries the mapping.
func (o *PurchaseOrder) Receive(inventoryIDs map[uuid.UUID]uuid.UUID) ([]ReceivedLine, error) {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusReceived) {
		return nil, shared.NewDomainErrorf("INVALID_STATE", "Cannot receive goods for order in %s status", o.Status)
	}
	lines := make([]ReceivedLine, 0, len(o.Items))
	for _, item := range o.Items {
		invID, ok := inventoryIDs[item.ID]
		if !ok {
			return nil, fmt.Errorf("no inventory item supplied for purchase order item %s", item.ID)
		}
		lines = append(lines, ReceivedLine{
			PurchaseOrderItemID: item.ID,
			InventoryItemID:     invID,
			ProductName:         item.ProductName,
			Quantity:            item.Quantity,
			PurchasePrice:       item.UnitCost,
		})
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusReceived
	o.ReceivedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o, lines))
	return lines, nil
}

// Cancel cancels a non-terminal order
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewDomainErrorf("INVALID_STATE", "Cannot cancel order in %s status", o.Status)
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o))
	return nil
}

// CanModify reports whether lines and investments may still change
func (o *PurchaseOrder) CanModify() bool {
	return !o.Status.IsTerminal()
}

func (o *PurchaseOrder) recalculateTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Subtotal)
		tax = tax.Add(item.TaxAmount)
	}
	o.Subtotal = subtotal
	o.TotalTax = tax
	o.TotalAmount = subtotal.Add(tax)
	o.DueAmount = o.TotalAmount.Sub(o.PaidAmount)
}
