package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/trade"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AggregateModel
	OrderNumber  string                    `gorm:"type:varchar(50);not null;uniqueIndex"`
	VendorName   string                    `gorm:"type:varchar(200);not null"`
	VendorPhone  string                    `gorm:"type:varchar(50)"`
	Items        []PurchaseOrderItemModel  `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal     decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	TotalTax     decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount  decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount   decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	DueAmount    decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	Status       trade.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Notes        string                    `gorm:"type:text"`
	OrderDate    time.Time                 `gorm:"not null;index"`
	ReceivedAt   *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder.
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	order := &trade.PurchaseOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		VendorName:        m.VendorName,
		VendorPhone:       m.VendorPhone,
		Subtotal:          m.Subtotal,
		TotalTax:          m.TotalTax,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		DueAmount:         m.DueAmount,
		Status:            m.Status,
		Notes:             m.Notes,
		OrderDate:         m.OrderDate,
		ReceivedAt:        m.ReceivedAt,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		Items:             make([]trade.PurchaseOrderItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain PurchaseOrder.
func (m *PurchaseOrderModel) FromDomain(o *trade.PurchaseOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.VendorName = o.VendorName
	m.VendorPhone = o.VendorPhone
	m.Subtotal = o.Subtotal
	m.TotalTax = o.TotalTax
	m.TotalAmount = o.TotalAmount
	m.PaidAmount = o.PaidAmount
	m.DueAmount = o.DueAmount
	m.Status = o.Status
	m.Notes = o.Notes
	m.OrderDate = o.OrderDate
	m.ReceivedAt = o.ReceivedAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.Items = make([]PurchaseOrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i] = *PurchaseOrderItemModelFromDomain(&o.Items[i])
		m.Items[i].Position = i
	}
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder.
func PurchaseOrderModelFromDomain(o *trade.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(o)
	return m
}

// PurchaseOrderItemModel is one line of a purchase order.
type PurchaseOrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:varchar(500)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Position    int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}

// ToDomain converts the persistence model to a domain PurchaseOrderItem.
func (m *PurchaseOrderItemModel) ToDomain() *trade.PurchaseOrderItem {
	return &trade.PurchaseOrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductName: m.ProductName,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TaxRate:     m.TaxRate,
		Subtotal:    m.Subtotal,
		TaxAmount:   m.TaxAmount,
		Total:       m.Total,
	}
}

// PurchaseOrderItemModelFromDomain creates a new persistence model from a domain PurchaseOrderItem.
func PurchaseOrderItemModelFromDomain(i *trade.PurchaseOrderItem) *PurchaseOrderItemModel {
	return &PurchaseOrderItemModel{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductName: i.ProductName,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitCost:    i.UnitCost,
		TaxRate:     i.TaxRate,
		Subtotal:    i.Subtotal,
		TaxAmount:   i.TaxAmount,
		Total:       i.Total,
	}
}

// PurchaseOrderPaymentModel is a vendor payment against a purchase order.
type PurchaseOrderPaymentModel struct {
	BaseModel
	PurchaseOrderID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Method          trade.PaymentMethod `gorm:"type:varchar(20);not null"`
	Reference       string              `gorm:"type:varchar(200)"`
	Note            string              `gorm:"type:varchar(500)"`
	PaidAt          time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderPaymentModel) TableName() string {
	return "purchase_order_payments"
}

// ToDomain converts the persistence model to a domain PurchaseOrderPayment.
func (m *PurchaseOrderPaymentModel) ToDomain() *trade.PurchaseOrderPayment {
	return &trade.PurchaseOrderPayment{
		BaseEntity:      m.BaseModel.ToDomain(),
		PurchaseOrderID: m.PurchaseOrderID,
		Amount:          m.Amount,
		Method:          m.Method,
		Reference:       m.Reference,
		Note:            m.Note,
		PaidAt:          m.PaidAt,
	}
}

// PurchaseOrderPaymentModelFromDomain creates a new persistence model from a domain PurchaseOrderPayment.
func PurchaseOrderPaymentModelFromDomain(p *trade.PurchaseOrderPayment) *PurchaseOrderPaymentModel {
	m := &PurchaseOrderPaymentModel{
		PurchaseOrderID: p.PurchaseOrderID,
		Amount:          p.Amount,
		Method:          p.Method,
		Reference:       p.Reference,
		Note:            p.Note,
		PaidAt:          p.PaidAt,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// SalesOrderModel is the persistence model for the SalesOrder aggregate root.
type SalesOrderModel struct {
	AggregateModel
	OrderNumber string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	BuyerName   string                 `gorm:"type:varchar(200);not null"`
	BuyerPhone  string                 `gorm:"type:varchar(50)"`
	Lines       []SalesOrderLineModel  `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	Status      trade.SalesOrderStatus `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	Notes       string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder.
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	order := &trade.SalesOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		BuyerName:         m.BuyerName,
		BuyerPhone:        m.BuyerPhone,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		Notes:             m.Notes,
		Lines:             make([]trade.SalesOrderLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		order.Lines[i] = trade.SalesOrderLine{
			ID:              line.ID,
			OrderID:         line.OrderID,
			InventoryItemID: line.InventoryItemID,
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			TotalPrice:      line.TotalPrice,
		}
	}
	return order
}

// SalesOrderModelFromDomain creates a new persistence model from a domain SalesOrder.
func SalesOrderModelFromDomain(o *trade.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{
		OrderNumber: o.OrderNumber,
		BuyerName:   o.BuyerName,
		BuyerPhone:  o.BuyerPhone,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		Notes:       o.Notes,
		Lines:       make([]SalesOrderLineModel, len(o.Lines)),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i, line := range o.Lines {
		m.Lines[i] = SalesOrderLineModel{
			ID:              line.ID,
			OrderID:         line.OrderID,
			InventoryItemID: line.InventoryItemID,
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			TotalPrice:      line.TotalPrice,
		}
	}
	return m
}

// SalesOrderLineModel is one line of a sales order, drawn from a single inventory item.
type SalesOrderLineModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SalesOrderLineModel) TableName() string {
	return "sales_order_lines"
}
