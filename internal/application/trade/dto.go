package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	"github.com/stationery/backoffice/internal/domain/inventory"
	"github.com/stationery/backoffice/internal/domain/trade"
)

// ==================== Purchase Order DTOs ====================

// PurchaseOrderItemInput is a line on a create or update request
type PurchaseOrderItemInput struct {
	ProductName string          `json:"product_name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost" binding:"required"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

func toLineSpecs(items []PurchaseOrderItemInput) []trade.LineSpec {
	specs := make([]trade.LineSpec, len(items))
	for i, item := range items {
		specs[i] = trade.LineSpec{
			ProductName: item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			TaxRate:     item.TaxRate,
		}
	}
	return specs
}

// CreatePurchaseOrderRequest creates a purchase order together with its investment proposal
type CreatePurchaseOrderRequest struct {
	OrderNumber string                         `json:"order_number" binding:"max=50"`
	VendorName  string                         `json:"vendor_name" binding:"required,min=1,max=200"`
	VendorPhone string                         `json:"vendor_phone" binding:"max=50"`
	Notes       string                         `json:"notes"`
	Items       []PurchaseOrderItemInput       `json:"items" binding:"required,min=1,dive"`
	Investments []financingapp.InvestmentInput `json:"investments" binding:"dive"`
}

// UpdatePurchaseOrderRequest is a partial update. A nil Items keeps the
// current lines; a nil Investments keeps the current proposal.
type UpdatePurchaseOrderRequest struct {
	VendorPhone *string                         `json:"vendor_phone"`
	Notes       *string                         `json:"notes"`
	Items       []PurchaseOrderItemInput        `json:"items" binding:"omitempty,min=1,dive"`
	Investments *[]financingapp.InvestmentInput `json:"investments"`
}

// CancelPurchaseOrderRequest cancels an order
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// PurchaseOrderListFilter narrows purchase order listings
type PurchaseOrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING APPROVED ORDERED RECEIVED CANCELLED"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseOrderItemResponse is the API view of a purchase order line
type PurchaseOrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"product_name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
}

// PurchaseOrderResponse is the API view of a purchase order
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	VendorName   string                      `json:"vendor_name"`
	VendorPhone  string                      `json:"vendor_phone,omitempty"`
	Status       string                      `json:"status"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	Subtotal     decimal.Decimal             `json:"subtotal"`
	TotalTax     decimal.Decimal             `json:"total_tax"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	PaidAmount   decimal.Decimal             `json:"paid_amount"`
	DueAmount    decimal.Decimal             `json:"due_amount"`
	Notes        string                      `json:"notes,omitempty"`
	OrderDate    time.Time                   `json:"order_date"`
	ReceivedAt   *time.Time                  `json:"received_at,omitempty"`
	CancelledAt  *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason string                      `json:"cancel_reason,omitempty"`
	Payments     []VendorPaymentResponse     `json:"payments,omitempty"`
	Version      int                         `json:"version"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain purchase order to its API view
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		VendorName:   o.VendorName,
		VendorPhone:  o.VendorPhone,
		Status:       string(o.Status),
		Items:        make([]PurchaseOrderItemResponse, len(o.Items)),
		Subtotal:     o.Subtotal,
		TotalTax:     o.TotalTax,
		TotalAmount:  o.TotalAmount,
		PaidAmount:   o.PaidAmount,
		DueAmount:    o.DueAmount,
		Notes:        o.Notes,
		OrderDate:    o.OrderDate,
		ReceivedAt:   o.ReceivedAt,
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
		Version:      o.Version,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for i, item := range o.Items {
		resp.Items[i] = PurchaseOrderItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			TaxRate:     item.TaxRate,
			Subtotal:    item.Subtotal,
			TaxAmount:   item.TaxAmount,
			Total:       item.Total,
		}
	}
	return resp
}

// PurchaseOrderWriteResponse is returned by writes that re-run the allocator
type PurchaseOrderWriteResponse struct {
	Order      PurchaseOrderResponse            `json:"order"`
	Allocation *financingapp.AllocationResponse `json:"allocation,omitempty"`
}

// ReceivedLineResponse maps a delivered line to its inventory item
type ReceivedLineResponse struct {
	PurchaseOrderItemID uuid.UUID       `json:"purchase_order_item_id"`
	InventoryItemID     uuid.UUID       `json:"inventory_item_id"`
	ProductName         string          `json:"product_name"`
	Quantity            decimal.Decimal `json:"quantity"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
}

// ReceiveResponse is the result of receiving a purchase order
type ReceiveResponse struct {
	Order    PurchaseOrderResponse  `json:"order"`
	Received []ReceivedLineResponse `json:"received"`
}

func toReceivedLineResponses(lines []trade.ReceivedLine) []ReceivedLineResponse {
	out := make([]ReceivedLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ReceivedLineResponse(l)
	}
	return out
}

// ==================== Vendor Payment DTOs ====================

// VendorPaymentRequest adds or edits a payment to a vendor
type VendorPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHEQUE MOBILE"`
	Reference string          `json:"reference" binding:"max=100"`
	Note      string          `json:"note" binding:"max=500"`
}

// VendorPaymentResponse is the API view of a vendor payment
type VendorPaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Reference       string          `json:"reference,omitempty"`
	Note            string          `json:"note,omitempty"`
	PaidAt          time.Time       `json:"paid_at"`
}

// ToVendorPaymentResponse converts a domain vendor payment to its API view
func ToVendorPaymentResponse(p *trade.PurchaseOrderPayment) VendorPaymentResponse {
	return VendorPaymentResponse{
		ID:              p.ID,
		PurchaseOrderID: p.PurchaseOrderID,
		Amount:          p.Amount,
		Method:          string(p.Method),
		Reference:       p.Reference,
		Note:            p.Note,
		PaidAt:          p.PaidAt,
	}
}

// VendorPaymentResultResponse returns the payment together with the order's new balance
type VendorPaymentResultResponse struct {
	Payment    *VendorPaymentResponse `json:"payment,omitempty"`
	PaidAmount decimal.Decimal        `json:"paid_amount"`
	DueAmount  decimal.Decimal        `json:"due_amount"`
}

// ==================== Sales Order DTOs ====================

// SalesOrderLineInput is a quotation line drawing on an inventory item
type SalesOrderLineInput struct {
	InventoryItemID uuid.UUID       `json:"inventory_item_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSalesOrderRequest creates a resale order and reserves its stock
type CreateSalesOrderRequest struct {
	OrderNumber string                `json:"order_number" binding:"max=50"`
	BuyerName   string                `json:"buyer_name" binding:"required,min=1,max=200"`
	BuyerPhone  string                `json:"buyer_phone" binding:"max=50"`
	Notes       string                `json:"notes"`
	Lines       []SalesOrderLineInput `json:"lines" binding:"required,min=1,dive"`
}

// SalesOrderListFilter narrows sales order listings
type SalesOrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=OPEN BILLED CANCELLED"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SalesOrderLineResponse is the API view of a quotation line
type SalesOrderLineResponse struct {
	ID              uuid.UUID       `json:"id"`
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// SalesOrderResponse is the API view of a resale order
type SalesOrderResponse struct {
	ID          uuid.UUID                `json:"id"`
	OrderNumber string                   `json:"order_number"`
	BuyerName   string                   `json:"buyer_name"`
	BuyerPhone  string                   `json:"buyer_phone,omitempty"`
	Status      string                   `json:"status"`
	Lines       []SalesOrderLineResponse `json:"lines"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
	Notes       string                   `json:"notes,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// ToSalesOrderResponse converts a domain sales order to its API view
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	resp := SalesOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		BuyerName:   o.BuyerName,
		BuyerPhone:  o.BuyerPhone,
		Status:      string(o.Status),
		Lines:       make([]SalesOrderLineResponse, len(o.Lines)),
		TotalAmount: o.TotalAmount,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for i, l := range o.Lines {
		resp.Lines[i] = SalesOrderLineResponse{
			ID:              l.ID,
			InventoryItemID: l.InventoryItemID,
			ProductName:     l.ProductName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			TotalPrice:      l.TotalPrice,
		}
	}
	return resp
}

// ==================== Inventory DTOs ====================

// InventoryItemResponse is the API view of stock received from a purchase order
type InventoryItemResponse struct {
	ID                  uuid.UUID       `json:"id"`
	PurchaseOrderID     uuid.UUID       `json:"purchase_order_id"`
	PurchaseOrderItemID uuid.UUID       `json:"purchase_order_item_id"`
	ProductName         string          `json:"product_name"`
	Quantity            decimal.Decimal `json:"quantity"`
	AvailableQuantity   decimal.Decimal `json:"available_quantity"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
}

// ToInventoryItemResponse converts a domain inventory item to its API view
func ToInventoryItemResponse(i *inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:                  i.ID,
		PurchaseOrderID:     i.PurchaseOrderID,
		PurchaseOrderItemID: i.PurchaseOrderItemID,
		ProductName:         i.ProductName,
		Quantity:            i.Quantity,
		AvailableQuantity:   i.AvailableQuantity,
		PurchasePrice:       i.PurchasePrice,
	}
}
