// Package billing holds resale invoices to buyers and the cash collected against them.
// The financing context reads these rows but never writes them.
package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// BillStatus tracks how much of a bill has been collected
type BillStatus string

const (
	BillStatusUnpaid  BillStatus = "UNPAID"
	BillStatusPartial BillStatus = "PARTIAL"
	BillStatusPaid    BillStatus = "PAID"
)

// BillItem is a sold line; it references the inventory item whose units were sold
type BillItem struct {
	ID              uuid.UUID
	BillID          uuid.UUID
	InventoryItemID uuid.UUID
	ProductName     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
}

// BillLineSpec describes a line to place on a bill
type BillLineSpec struct {
	InventoryItemID uuid.UUID
	ProductName     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
}

// Bill is an invoice issued to a buyer against a sales order
type Bill struct {
	shared.BaseAggregateRoot
	BillNumber   string
	SalesOrderID uuid.UUID
	BuyerName    string
	Items        []BillItem
	TotalAmount  decimal.Decimal
	PaidAmount   decimal.Decimal
	Status       BillStatus
	IssuedAt     time.Time
}

// NewBill issues a bill with its items
func NewBill(billNumber string, salesOrderID uuid.UUID, buyerName string, lines []BillLineSpec) (*Bill, error) {
	billNumber = strings.TrimSpace(billNumber)
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if salesOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_ORDER", "Sales order ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Bill must have at least one item")
	}

	bill := &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        billNumber,
		SalesOrderID:      salesOrderID,
		BuyerName:         strings.TrimSpace(buyerName),
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		Status:            BillStatusUnpaid,
	}
	bill.IssuedAt = bill.CreatedAt
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
		bill.Items = append(bill.Items, BillItem{
			ID:              uuid.New(),
			BillID:          bill.ID,
			InventoryItemID: l.InventoryItemID,
			ProductName:     l.ProductName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			TotalPrice:      total,
		})
		bill.TotalAmount = bill.TotalAmount.Add(total)
	}
	return bill, nil
}

// Outstanding is the amount still to be collected
func (b *Bill) Outstanding() decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// RecordPayment collects cash against the bill. Payments are positive and can
// never exceed the outstanding balance, so collected cash is bounded by revenue.
func (b *Bill) RecordPayment(amount decimal.Decimal, method, reference string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(b.Outstanding()) {
		return nil, shared.NewDomainErrorf("PAYMENT_EXCEEDS_BALANCE", "Payment amount %s exceeds outstanding balance %s",
			amount.StringFixed(2), b.Outstanding().StringFixed(2)).
			WithDetails(map[string]any{
				"bill_id":     b.ID.String(),
				"requested":   amount.StringFixed(2),
				"outstanding": b.Outstanding().StringFixed(2),
			})
	}

	base := shared.NewBaseEntity()
	payment := &Payment{
		BaseEntity: base,
		BillID:     b.ID,
		Amount:     amount,
		Method:     strings.ToUpper(strings.TrimSpace(method)),
		Reference:  strings.TrimSpace(reference),
		PaidAt:     base.CreatedAt,
	}

	b.PaidAmount = b.PaidAmount.Add(amount)
	switch {
	case b.PaidAmount.GreaterThanOrEqual(b.TotalAmount):
		b.Status = BillStatusPaid
	case b.PaidAmount.IsPositive():
		b.Status = BillStatusPartial
	}
	b.Touch()
	b.IncrementVersion()
	return payment, nil
}

// Payment is money collected against a bill. Rows are append-only.
type Payment struct {
	shared.BaseEntity
	BillID    uuid.UUID
	Amount    decimal.Decimal
	Method    string
	Reference string
	PaidAt    time.Time
}
