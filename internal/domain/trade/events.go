package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants
const (
	EventTypePurchaseOrderCreated   = "PurchaseOrderCreated"
	EventTypePurchaseOrderReceived  = "PurchaseOrderReceived"
	EventTypePurchaseOrderCancelled = "PurchaseOrderCancelled"
)

// PurchaseOrderCreatedEvent is raised when a new purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	VendorName  string          `json:"vendor_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		VendorName:      order.VendorName,
		TotalAmount:     order.TotalAmount,
	}
}

// PurchaseOrderReceivedEvent carries the mapping from order lines to the
// inventory items created when the goods arrived
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID      `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	Lines       []ReceivedLine `json:"lines"`
}

// NewPurchaseOrderReceivedEvent creates a new PurchaseOrderReceivedEvent
func NewPurchaseOrderReceivedEvent(order *PurchaseOrder, lines []ReceivedLine) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Lines:           lines,
	}
}

// PurchaseOrderCancelledEvent is raised when a purchase order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	CancelReason string    `json:"cancel_reason"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(order *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CancelReason:    order.CancelReason,
	}
}
