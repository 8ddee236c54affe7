package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// BaseModel is the identity and audit columns shared by every table
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	*m = BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

// AggregateModel adds the version column repositories compare on update
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ToDomainAggregateRoot drops nothing but pending events, which are never stored
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain(), Version: m.Version}
}

// AllModels is every table in foreign-key order. Tests AutoMigrate it; production uses migrations.
func AllModels() []any {
	return []any{
		&InvestorModel{},
		&PurchaseOrderModel{},
		&PurchaseOrderItemModel{},
		&PurchaseOrderPaymentModel{},
		&InvestmentModel{},
		&InvestorPaymentModel{},
		&InventoryItemModel{},
		&SalesOrderModel{},
		&SalesOrderLineModel{},
		&BillModel{},
		&BillItemModel{},
		&PaymentModel{},
	}
}
