package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/shared/valueobject"
)

// InvestorModel is the persistence model for the Investor aggregate root.
type InvestorModel struct {
	AggregateModel
	Name              string `gorm:"type:varchar(200);not null;index"`
	Phone             string `gorm:"type:varchar(50)"`
	Email             string `gorm:"type:varchar(200)"`
	Address           string `gorm:"type:varchar(500)"`
	BankName          string `gorm:"type:varchar(200)"`
	BankAccountName   string `gorm:"type:varchar(200)"`
	BankAccountNumber string `gorm:"type:varchar(100)"`
	BankBranch        string `gorm:"type:varchar(200)"`
	Notes             string `gorm:"type:text"`
	IsActive          bool   `gorm:"not null;default:true"`
	IsHouse           bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (InvestorModel) TableName() string {
	return "investors"
}

// ToDomain converts the persistence model to a domain Investor.
func (m *InvestorModel) ToDomain() *financing.Investor {
	return &financing.Investor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Contact: financing.ContactDetails{
			Phone:   m.Phone,
			Email:   m.Email,
			Address: m.Address,
		},
		Bank: financing.BankDetails{
			BankName:      m.BankName,
			AccountName:   m.BankAccountName,
			AccountNumber: m.BankAccountNumber,
			Branch:        m.BankBranch,
		},
		Notes:    m.Notes,
		IsActive: m.IsActive,
		IsHouse:  m.IsHouse,
	}
}

// FromDomain populates the persistence model from a domain Investor.
func (m *InvestorModel) FromDomain(i *financing.Investor) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Name = i.Name
	m.Phone = i.Contact.Phone
	m.Email = i.Contact.Email
	m.Address = i.Contact.Address
	m.BankName = i.Bank.BankName
	m.BankAccountName = i.Bank.AccountName
	m.BankAccountNumber = i.Bank.AccountNumber
	m.BankBranch = i.Bank.Branch
	m.Notes = i.Notes
	m.IsActive = i.IsActive
	m.IsHouse = i.IsHouse
}

// InvestorModelFromDomain creates a new persistence model from a domain Investor.
func InvestorModelFromDomain(i *financing.Investor) *InvestorModel {
	m := &InvestorModel{}
	m.FromDomain(i)
	return m
}

// InvestmentModel is one row of a purchase order's investment set.
type InvestmentModel struct {
	BaseModel
	InvestorID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvestmentAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ProfitPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsFullInvestment bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (InvestmentModel) TableName() string {
	return "investments"
}

// ToDomain converts the persistence model to a domain Investment.
func (m *InvestmentModel) ToDomain() *financing.Investment {
	pct, err := valueobject.NewPercentage(m.ProfitPercentage)
	if err != nil {
		// clamp rows edited outside the allocator
		pct = valueobject.MustNewPercentage(decimal.Max(decimal.Zero, decimal.Min(m.ProfitPercentage, decimal.NewFromInt(100))))
	}
	return &financing.Investment{
		BaseEntity:       m.BaseModel.ToDomain(),
		InvestorID:       m.InvestorID,
		PurchaseOrderID:  m.PurchaseOrderID,
		InvestmentAmount: m.InvestmentAmount,
		ProfitPercentage: pct,
		IsFullInvestment: m.IsFullInvestment,
	}
}

// FromDomain populates the persistence model from a domain Investment.
func (m *InvestmentModel) FromDomain(i *financing.Investment) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.InvestorID = i.InvestorID
	m.PurchaseOrderID = i.PurchaseOrderID
	m.InvestmentAmount = i.InvestmentAmount
	m.ProfitPercentage = i.ProfitPercentage.Decimal()
	m.IsFullInvestment = i.IsFullInvestment
}

// InvestmentModelFromDomain creates a new persistence model from a domain Investment.
func InvestmentModelFromDomain(i *financing.Investment) *InvestmentModel {
	m := &InvestmentModel{}
	m.FromDomain(i)
	return m
}

// InvestorPaymentModel is an append-only payout row.
type InvestorPaymentModel struct {
	BaseModel
	InvestorID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_investor_payments_idempotency,priority:1"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description    string          `gorm:"type:varchar(500)"`
	PaidAt         time.Time       `gorm:"not null;index"`
	IdempotencyKey *string         `gorm:"type:varchar(200);uniqueIndex:idx_investor_payments_idempotency,priority:2"`
}

// TableName returns the table name for GORM
func (InvestorPaymentModel) TableName() string {
	return "investor_payments"
}

// ToDomain converts the persistence model to a domain InvestorPayment.
func (m *InvestorPaymentModel) ToDomain() *financing.InvestorPayment {
	p := &financing.InvestorPayment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		InvestorID:  m.InvestorID,
		Amount:      m.Amount,
		Description: m.Description,
		PaidAt:      m.PaidAt,
	}
	if m.IdempotencyKey != nil {
		p.IdempotencyKey = *m.IdempotencyKey
	}
	return p
}

// InvestorPaymentModelFromDomain creates a new persistence model from a domain InvestorPayment.
func InvestorPaymentModelFromDomain(p *financing.InvestorPayment) *InvestorPaymentModel {
	m := &InvestorPaymentModel{
		InvestorID:  p.InvestorID,
		Amount:      p.Amount,
		Description: p.Description,
		PaidAt:      p.PaidAt,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	if p.IdempotencyKey != "" {
		key := p.IdempotencyKey
		m.IdempotencyKey = &key
	}
	return m
}
