package financing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// Event types
const (
	EventTypeInvestmentsAllocated = "InvestmentsAllocated"
	EventTypeInvestorPaid         = "InvestorPaid"
)

// Aggregate types
const (
	AggregateTypeInvestor      = "Investor"
	AggregateTypePurchaseOrder = "PurchaseOrder"
)

// InvestmentsAllocatedEvent is raised after a purchase order's investment set is replaced
type InvestmentsAllocatedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	InvestmentCount int             `json:"investment_count"`
	HouseAmount     decimal.Decimal `json:"house_amount"`
	HousePercentage decimal.Decimal `json:"house_percentage"`
}

// NewInvestmentsAllocatedEvent builds the event from a finalized allocation
func NewInvestmentsAllocatedEvent(alloc *Allocation) *InvestmentsAllocatedEvent {
	e := &InvestmentsAllocatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvestmentsAllocated, AggregateTypePurchaseOrder, alloc.PurchaseOrderID),
		PurchaseOrderID: alloc.PurchaseOrderID,
		TargetAmount:    alloc.TargetAmount,
		InvestmentCount: len(alloc.Investments),
		HouseAmount:     decimal.Zero,
		HousePercentage: decimal.Zero,
	}
	if alloc.House != nil {
		e.HouseAmount = alloc.House.InvestmentAmount
		e.HousePercentage = alloc.House.ProfitPercentage.Decimal()
	}
	return e
}

// InvestorPaidEvent is raised after a payout row is committed
type InvestorPaidEvent struct {
	shared.BaseDomainEvent
	InvestorID    uuid.UUID       `json:"investor_id"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	PayableBefore decimal.Decimal `json:"payable_before"`
}

// NewInvestorPaidEvent builds the event for a committed payout
func NewInvestorPaidEvent(payment *InvestorPayment, payableBefore decimal.Decimal) *InvestorPaidEvent {
	return &InvestorPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvestorPaid, AggregateTypeInvestor, payment.InvestorID),
		InvestorID:      payment.InvestorID,
		PaymentID:       payment.ID,
		Amount:          payment.Amount,
		PayableBefore:   payableBefore,
	}
}
