package financing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// InvestorPayment is money paid out to an investor. Rows are append-only and
// settle against the investor's running balance, not a specific order.
type InvestorPayment struct {
	shared.BaseEntity
	InvestorID     uuid.UUID
	Amount         decimal.Decimal
	Description    string
	PaidAt         time.Time
	IdempotencyKey string
}

// NewInvestorPayment creates a payout row after the ceiling has been checked
func NewInvestorPayment(investorID uuid.UUID, amount decimal.Decimal, description string) (*InvestorPayment, error) {
	if investorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Investor ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidPayoutAmount.WithDetails(map[string]any{"requested": amount.String()})
	}
	base := shared.NewBaseEntity()
	return &InvestorPayment{
		BaseEntity:  base,
		InvestorID:  investorID,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		PaidAt:      base.CreatedAt,
	}, nil
}

// CheckPayout validates a requested payout against a freshly computed statement.
// The full amount must fit under the payable ceiling; there is no partial acceptance.
func CheckPayout(profit *InvestorProfit, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidPayoutAmount.WithDetails(map[string]any{
			"investor_id": profit.InvestorID.String(),
			"requested":   amount.String(),
		})
	}
	if !amount.Equal(amount.Truncate(2)) {
		return shared.NewDomainError(ErrInvalidPayoutAmount.Code, "Payout amount cannot have more than two decimal places").
			WithDetails(map[string]any{
				"investor_id": profit.InvestorID.String(),
				"requested":   amount.String(),
			})
	}
	if amount.GreaterThan(profit.PayableNow) {
		return shared.NewDomainErrorf(ErrPayoutExceedsPayable.Code,
			"Payout amount %s exceeds payable amount %s for investor %s",
			amount.StringFixed(2), profit.PayableNow.StringFixed(2), profit.InvestorID).
			WithDetails(map[string]any{
				"investor_id": profit.InvestorID.String(),
				"requested":   amount.StringFixed(2),
				"payable_now": profit.PayableNow.StringFixed(2),
			})
	}
	return nil
}
