package trade

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// SalesOrderStatus represents the status of a resale order
type SalesOrderStatus string

const (
	SalesOrderStatusOpen      SalesOrderStatus = "OPEN"
	SalesOrderStatusBilled    SalesOrderStatus = "BILLED"
	SalesOrderStatusCancelled SalesOrderStatus = "CANCELLED"
)

// SalesOrderLine is a quotation line pointing at the inventory item it sells
type SalesOrderLine struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	InventoryItemID uuid.UUID
	ProductName     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
}

// SalesLineSpec describes a line to place on a sales order
type SalesLineSpec struct {
	InventoryItemID uuid.UUID
	ProductName     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
}

// SalesOrder is a resale order to a buyer. Its lines may draw on inventory
// from several purchase orders with different investors.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber string
	BuyerName   string
	BuyerPhone  string
	Lines       []SalesOrderLine
	TotalAmount decimal.Decimal
	Status      SalesOrderStatus
	Notes       string
}

// NewSalesOrder creates an open sales order from quotation lines
func NewSalesOrder(orderNumber, buyerName string, lines []SalesLineSpec) (*SalesOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if strings.TrimSpace(buyerName) == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer name cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Sales order must have at least one line")
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		BuyerName:         strings.TrimSpace(buyerName),
		Status:            SalesOrderStatusOpen,
		TotalAmount:       decimal.Zero,
	}
	for idx, l := range lines {
		if l.InventoryItemID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_INVENTORY_ITEM", "Inventory item is required").
				WithDetails(map[string]any{"line": idx})
		}
		if !l.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive").
				WithDetails(map[string]any{"line": idx})
		}
		if l.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative").
				WithDetails(map[string]any{"line": idx})
		}
		total := l.Quantity.Mul(l.UnitPrice).Round(2)
		order.Lines = append(order.Lines, SalesOrderLine{
			ID:              uuid.New(),
			OrderID:         order.ID,
			InventoryItemID: l.InventoryItemID,
			ProductName:     l.ProductName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			TotalPrice:      total,
		})
		order.TotalAmount = order.TotalAmount.Add(total)
	}
	return order, nil
}

// GetLine finds a line by id
func (o *SalesOrder) GetLine(lineID uuid.UUID) *SalesOrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// MarkBilled records that a bill was issued for the order
func (o *SalesOrder) MarkBilled() error {
	if o.Status != SalesOrderStatusOpen {
		return shared.NewDomainErrorf("INVALID_STATE", "Cannot bill an order in %s status", o.Status)
	}
	o.Status = SalesOrderStatusBilled
	o.Touch()
	o.IncrementVersion()
	return nil
}
