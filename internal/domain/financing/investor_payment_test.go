package financing

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPayout(t *testing.T) {
	profit := &InvestorProfit{InvestorID: uuid.New(), PayableNow: d("400")}

	tests := []struct {
		name     string
		amount   string
		wantCode string
	}{
		{"exact ceiling", "400", ""},
		{"below ceiling", "0.01", ""},
		{"one cent over", "400.01", "PAYOUT_EXCEEDS_PAYABLE"},
		{"zero", "0", "INVALID_PAYOUT_AMOUNT"},
		{"negative", "-5", "INVALID_PAYOUT_AMOUNT"},
		{"sub-cent", "10.005", "INVALID_PAYOUT_AMOUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPayout(profit, d(tt.amount))
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.wantCode, de.Code)
		})
	}
}

func TestCheckPayout_ErrorCarriesCeiling(t *testing.T) {
	investorID := uuid.New()
	profit := &InvestorProfit{InvestorID: investorID, PayableNow: d("400")}

	err := CheckPayout(profit, d("500"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400.00")
	assert.Contains(t, err.Error(), investorID.String())
	assert.True(t, errors.Is(err, ErrPayoutExceedsPayable))

	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "400.00", de.Details["payable_now"])
	assert.Equal(t, "500.00", de.Details["requested"])
}

func TestNewInvestorPayment(t *testing.T) {
	investorID := uuid.New()

	p, err := NewInvestorPayment(investorID, d("250"), "  quarterly payout ")
	require.NoError(t, err)
	assert.Equal(t, investorID, p.InvestorID)
	assert.Equal(t, "quarterly payout", p.Description)
	assert.False(t, p.PaidAt.IsZero())

	_, err = NewInvestorPayment(investorID, decimal.Zero, "")
	assert.True(t, errors.Is(err, ErrInvalidPayoutAmount))

	_, err = NewInvestorPayment(uuid.Nil, d("1"), "")
	assert.Error(t, err)
}

func TestPayoutReducesPayableByExactAmount(t *testing.T) {
	f := newLedgerFixture(t)
	calc := NewProfitCalculator(AttributionProportional)

	before := calc.Calculate(f.investorID, f.inputs)
	require.NoError(t, CheckPayout(before, d("100.25")))

	f.inputs.TotalPaid = f.inputs.TotalPaid.Add(d("100.25"))
	after := calc.Calculate(f.investorID, f.inputs)

	assert.True(t, before.PayableNow.Sub(after.PayableNow).Equal(d("100.25")))
}
