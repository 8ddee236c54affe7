package financing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/shared/valueobject"
)

var (
	// DefaultEpsilon is the absolute tolerance used when reconciling sums
	DefaultEpsilon = decimal.New(1, -2)
	hundred        = decimal.NewFromInt(100)
)

// Proposal is one investor's requested contribution to a purchase order
type Proposal struct {
	InvestorID       uuid.UUID
	InvestmentAmount decimal.Decimal
	ProfitPercentage decimal.Decimal
	IsFullInvestment bool
}

// Allocation is the finalized investment set for one purchase order
type Allocation struct {
	PurchaseOrderID    uuid.UUID
	TargetAmount       decimal.Decimal
	ProposedAmount     decimal.Decimal
	ProposedPercentage decimal.Decimal
	Investments        []Investment
	// House is the synthetic record absorbing the shortfall, nil when the proposal was complete
	House *Investment
}

// TotalAmount sums investment amounts across the allocation
func (a *Allocation) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range a.Investments {
		total = total.Add(inv.InvestmentAmount)
	}
	return total
}

// TotalPercentage sums profit percentages across the allocation
func (a *Allocation) TotalPercentage() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range a.Investments {
		total = total.Add(inv.ProfitPercentage.Decimal())
	}
	return total
}

// Verify asserts the finalized set accounts for the whole target and 100% of profit
func (a *Allocation) Verify(epsilon decimal.Decimal) error {
	if a.TotalPercentage().Sub(hundred).Abs().GreaterThanOrEqual(epsilon) {
		return fmt.Errorf("allocation for purchase order %s sums to %s%% instead of 100%%",
			a.PurchaseOrderID, a.TotalPercentage().StringFixed(2))
	}
	if a.TotalAmount().Sub(a.TargetAmount).Abs().GreaterThanOrEqual(epsilon) {
		return fmt.Errorf("allocation for purchase order %s sums to %s instead of %s",
			a.PurchaseOrderID, a.TotalAmount().StringFixed(2), a.TargetAmount.StringFixed(2))
	}
	return nil
}

// Allocator turns a proposal into a finalized investment set, assigning any
// unfunded remainder to the house investor.
type Allocator struct {
	houseInvestorID uuid.UUID
	epsilon         decimal.Decimal
}

// NewAllocator creates an allocator bound to the reserved house investor id
func NewAllocator(houseInvestorID uuid.UUID, epsilon decimal.Decimal) *Allocator {
	if !epsilon.IsPositive() {
		epsilon = DefaultEpsilon
	}
	return &Allocator{
		houseInvestorID: houseInvestorID,
		epsilon:         epsilon,
	}
}

// HouseInvestorID returns the reserved house investor id
func (a *Allocator) HouseInvestorID() uuid.UUID {
	return a.houseInvestorID
}

// Epsilon returns the reconciliation tolerance
func (a *Allocator) Epsilon() decimal.Decimal {
	return a.epsilon
}

// Allocate validates proposals against the purchase order total and returns the finalized set.
// Over-subscription in either percentage or amount is rejected; a shortfall becomes a house record.
func (a *Allocator) Allocate(purchaseOrderID uuid.UUID, target decimal.Decimal, proposals []Proposal) (*Allocation, error) {
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase order ID cannot be empty")
	}
	if target.IsNegative() {
		return nil, shared.NewDomainErrorf("INVALID_INPUT", "Purchase order total cannot be negative: %s", target.StringFixed(2))
	}

	if !hasCents(target) {
		return nil, shared.NewDomainErrorf("INVALID_INPUT", "Purchase order total cannot have more than two decimal places: %s", target.String())
	}

	investments := make([]Investment, 0, len(proposals)+1)
	sumPct := decimal.Zero
	sumAmount := decimal.Zero
	for idx, p := range proposals {
		if p.InvestorID == uuid.Nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Investor ID is required for every investment").
				WithDetails(map[string]any{"index": idx})
		}
		if p.InvestmentAmount.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Investment amount cannot be negative").
				WithDetails(map[string]any{"index": idx, "investor_id": p.InvestorID.String()})
		}
		if !hasCents(p.InvestmentAmount) || !hasCents(p.ProfitPercentage) {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Investment amount and profit percentage cannot have more than two decimal places").
				WithDetails(map[string]any{
					"index":             idx,
					"investor_id":       p.InvestorID.String(),
					"investment_amount": p.InvestmentAmount.String(),
					"profit_percentage": p.ProfitPercentage.String(),
				})
		}
		pct, err := valueobject.NewPercentage(p.ProfitPercentage)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Profit percentage must be between 0 and 100").
				WithDetails(map[string]any{"index": idx, "investor_id": p.InvestorID.String(), "profit_percentage": p.ProfitPercentage.String()})
		}
		inv, err := NewInvestment(purchaseOrderID, p.InvestorID, p.InvestmentAmount, pct, p.IsFullInvestment)
		if err != nil {
			return nil, err
		}
		investments = append(investments, *inv)
		sumPct = sumPct.Add(p.ProfitPercentage)
		sumAmount = sumAmount.Add(p.InvestmentAmount)
	}

	alloc := &Allocation{
		PurchaseOrderID:    purchaseOrderID,
		TargetAmount:       target,
		ProposedAmount:     sumAmount,
		ProposedPercentage: sumPct,
	}

	if a.within(sumPct, hundred) && a.within(sumAmount, target) {
		alloc.Investments = investments
		return alloc, nil
	}

	if sumPct.GreaterThan(hundred) || sumAmount.GreaterThan(target) {
		return nil, ErrInvestmentOversubscribed.WithDetails(map[string]any{
			"purchase_order_id":     purchaseOrderID.String(),
			"profit_percentage_sum": sumPct.StringFixed(2),
			"investment_amount_sum": sumAmount.StringFixed(2),
			"target_amount":         target.StringFixed(2),
		})
	}

	house, err := valueobject.NewPercentage(hundred.Sub(sumPct))
	if err != nil {
		return nil, fmt.Errorf("house share out of range: %w", err)
	}
	houseInv, err := NewInvestment(purchaseOrderID, a.houseInvestorID, target.Sub(sumAmount), house, false)
	if err != nil {
		return nil, err
	}
	alloc.Investments = append(investments, *houseInv)
	alloc.House = &alloc.Investments[len(alloc.Investments)-1]
	return alloc, nil
}

func (a *Allocator) within(value, target decimal.Decimal) bool {
	return value.Sub(target).Abs().LessThan(a.epsilon)
}

// hasCents reports whether v fits the two-decimal columns it is stored in
func hasCents(v decimal.Decimal) bool {
	return v.Equal(v.Truncate(2))
}
