package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/inventory"
)

// InventoryItemModel is the persistence model for the InventoryItem aggregate root.
// Each row is one lot received from a purchase order line.
type InventoryItemModel struct {
	AggregateModel
	PurchaseOrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseOrderItemID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ProductName         string          `gorm:"type:varchar(200);not null"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AvailableQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PurchasePrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem.
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	return &inventory.InventoryItem{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		PurchaseOrderID:     m.PurchaseOrderID,
		PurchaseOrderItemID: m.PurchaseOrderItemID,
		ProductName:         m.ProductName,
		Quantity:            m.Quantity,
		AvailableQuantity:   m.AvailableQuantity,
		PurchasePrice:       m.PurchasePrice,
	}
}

// FromDomain populates the persistence model from a domain InventoryItem.
func (m *InventoryItemModel) FromDomain(i *inventory.InventoryItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.PurchaseOrderID = i.PurchaseOrderID
	m.PurchaseOrderItemID = i.PurchaseOrderItemID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.AvailableQuantity = i.AvailableQuantity
	m.PurchasePrice = i.PurchasePrice
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem.
func InventoryItemModelFromDomain(i *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{}
	m.FromDomain(i)
	return m
}
