package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/billing"
)

// IssueBillRequest issues a bill for a sales order. Items are copied from the order's lines.
type IssueBillRequest struct {
	SalesOrderID uuid.UUID `json:"sales_order_id" binding:"required"`
	BillNumber   string    `json:"bill_number" binding:"max=50"`
}

// RecordBillPaymentRequest collects cash against a bill
type RecordBillPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,max=30"`
	Reference string          `json:"reference" binding:"max=100"`
}

// BillItemResponse is the API view of a bill item
type BillItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// BillResponse is the API view of a bill
type BillResponse struct {
	ID           uuid.UUID             `json:"id"`
	BillNumber   string                `json:"bill_number"`
	SalesOrderID uuid.UUID             `json:"sales_order_id"`
	BuyerName    string                `json:"buyer_name"`
	Status       string                `json:"status"`
	Items        []BillItemResponse    `json:"items"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	PaidAmount   decimal.Decimal       `json:"paid_amount"`
	Outstanding  decimal.Decimal       `json:"outstanding"`
	Payments     []BillPaymentResponse `json:"payments,omitempty"`
	IssuedAt     time.Time             `json:"issued_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ToBillResponse converts a domain bill to its API view
func ToBillResponse(b *billing.Bill) BillResponse {
	resp := BillResponse{
		ID:           b.ID,
		BillNumber:   b.BillNumber,
		SalesOrderID: b.SalesOrderID,
		BuyerName:    b.BuyerName,
		Status:       string(b.Status),
		Items:        make([]BillItemResponse, len(b.Items)),
		TotalAmount:  b.TotalAmount,
		PaidAmount:   b.PaidAmount,
		Outstanding:  b.Outstanding(),
		IssuedAt:     b.IssuedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	for i, item := range b.Items {
		resp.Items[i] = BillItemResponse{
			ID:              item.ID,
			InventoryItemID: item.InventoryItemID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      item.TotalPrice,
		}
	}
	return resp
}

// BillPaymentResponse is the API view of cash collected against a bill
type BillPaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	BillID    uuid.UUID       `json:"bill_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

// ToBillPaymentResponse converts a domain payment to its API view
func ToBillPaymentResponse(p *billing.Payment) BillPaymentResponse {
	return BillPaymentResponse{
		ID:        p.ID,
		BillID:    p.BillID,
		Amount:    p.Amount,
		Method:    p.Method,
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}

// RecordBillPaymentResponse returns the payment with the bill's new balance
type RecordBillPaymentResponse struct {
	Payment     BillPaymentResponse `json:"payment"`
	BillStatus  string              `json:"bill_status"`
	PaidAmount  decimal.Decimal     `json:"paid_amount"`
	Outstanding decimal.Decimal     `json:"outstanding"`
}
