package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/billing"
)

// BillModel is the persistence model for the Bill aggregate root.
type BillModel struct {
	AggregateModel
	BillNumber   string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	SalesOrderID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
	BuyerName    string             `gorm:"type:varchar(200);not null"`
	Items        []BillItemModel    `gorm:"foreignKey:BillID;references:ID"`
	TotalAmount  decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	PaidAmount   decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Status       billing.BillStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	IssuedAt     time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill.
func (m *BillModel) ToDomain() *billing.Bill {
	bill := &billing.Bill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BillNumber:        m.BillNumber,
		SalesOrderID:      m.SalesOrderID,
		BuyerName:         m.BuyerName,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		Status:            m.Status,
		IssuedAt:          m.IssuedAt,
		Items:             make([]billing.BillItem, len(m.Items)),
	}
	for i, item := range m.Items {
		bill.Items[i] = billing.BillItem{
			ID:              item.ID,
			BillID:          item.BillID,
			InventoryItemID: item.InventoryItemID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      item.TotalPrice,
		}
	}
	return bill
}

// BillModelFromDomain creates a new persistence model from a domain Bill.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{
		BillNumber:   b.BillNumber,
		SalesOrderID: b.SalesOrderID,
		BuyerName:    b.BuyerName,
		TotalAmount:  b.TotalAmount,
		PaidAmount:   b.PaidAmount,
		Status:       b.Status,
		IssuedAt:     b.IssuedAt,
		Items:        make([]BillItemModel, len(b.Items)),
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	for i, item := range b.Items {
		m.Items[i] = BillItemModel{
			ID:              item.ID,
			BillID:          item.BillID,
			InventoryItemID: item.InventoryItemID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      item.TotalPrice,
		}
	}
	return m
}

// BillItemModel is one billed line, tied to the inventory item it sold.
type BillItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (BillItemModel) TableName() string {
	return "bill_items"
}

// PaymentModel is a buyer payment against a bill.
type PaymentModel struct {
	BaseModel
	BillID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method    string          `gorm:"type:varchar(20);not null"`
	Reference string          `gorm:"type:varchar(200)"`
	PaidAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		BillID:     m.BillID,
		Amount:     m.Amount,
		Method:     m.Method,
		Reference:  m.Reference,
		PaidAt:     m.PaidAt,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{
		BillID:    p.BillID,
		Amount:    p.Amount,
		Method:    p.Method,
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
