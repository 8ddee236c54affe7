package financing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/shared/valueobject"
)

// Investment joins one investor to one purchase order with the money they
// put in and the share of profit they receive. The set of investments on a
// purchase order is only ever written as a whole by the Allocator.
type Investment struct {
	shared.BaseEntity
	InvestorID       uuid.UUID
	PurchaseOrderID  uuid.UUID
	InvestmentAmount decimal.Decimal
	ProfitPercentage valueobject.Percentage
	IsFullInvestment bool
}

// NewInvestment validates and creates an investment row
func NewInvestment(purchaseOrderID, investorID uuid.UUID, amount decimal.Decimal, percentage valueobject.Percentage, full bool) (*Investment, error) {
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase order ID cannot be empty")
	}
	if investorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Investor ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Investment amount cannot be negative")
	}
	return &Investment{
		BaseEntity:       shared.NewBaseEntity(),
		InvestorID:       investorID,
		PurchaseOrderID:  purchaseOrderID,
		InvestmentAmount: amount,
		ProfitPercentage: percentage,
		IsFullInvestment: full,
	}, nil
}

// Share returns the profit share as a fraction in [0, 1]
func (i *Investment) Share() decimal.Decimal {
	return i.ProfitPercentage.Ratio()
}
