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

func newTestAllocator() (*Allocator, uuid.UUID) {
	house := uuid.MustParse("00000000-0000-0000-0000-000000005e1f")
	return NewAllocator(house, DefaultEpsilon), house
}

func TestAllocator_PartialFundingAddsHouseRecord(t *testing.T) {
	alloc, house := newTestAllocator()
	poID := uuid.New()
	investorA := uuid.New()

	result, err := alloc.Allocate(poID, d("10000"), []Proposal{
		{InvestorID: investorA, InvestmentAmount: d("6000"), ProfitPercentage: d("50")},
	})
	require.NoError(t, err)
	require.Len(t, result.Investments, 2)

	assert.Equal(t, investorA, result.Investments[0].InvestorID)
	assertDecimal(t, "6000", result.Investments[0].InvestmentAmount)
	assertDecimal(t, "50", result.Investments[0].ProfitPercentage.Decimal())

	require.NotNil(t, result.House)
	assert.Equal(t, house, result.Investments[1].InvestorID)
	assertDecimal(t, "4000", result.Investments[1].InvestmentAmount)
	assertDecimal(t, "50", result.Investments[1].ProfitPercentage.Decimal())
	assert.False(t, result.Investments[1].IsFullInvestment)
	assert.Equal(t, poID, result.Investments[1].PurchaseOrderID)

	assert.NoError(t, result.Verify(DefaultEpsilon))
}

func TestAllocator_ExactProposalHasNoHouseRecord(t *testing.T) {
	alloc, house := newTestAllocator()
	a, b := uuid.New(), uuid.New()

	result, err := alloc.Allocate(uuid.New(), d("10000"), []Proposal{
		{InvestorID: a, InvestmentAmount: d("7000"), ProfitPercentage: d("70"), IsFullInvestment: true},
		{InvestorID: b, InvestmentAmount: d("3000"), ProfitPercentage: d("30")},
	})
	require.NoError(t, err)
	assert.Len(t, result.Investments, 2)
	assert.Nil(t, result.House)
	for _, inv := range result.Investments {
		assert.NotEqual(t, house, inv.InvestorID)
	}
	assert.True(t, result.Investments[0].IsFullInvestment)
	assert.NoError(t, result.Verify(DefaultEpsilon))
}

func TestAllocator_WithinEpsilonIsAccepted(t *testing.T) {
	alloc := NewAllocator(uuid.New(), d("0.05"))

	result, err := alloc.Allocate(uuid.New(), d("10000"), []Proposal{
		{InvestorID: uuid.New(), InvestmentAmount: d("9999.98"), ProfitPercentage: d("99.98")},
	})
	require.NoError(t, err)
	assert.Len(t, result.Investments, 1)
	assert.Nil(t, result.House)
}

func TestAllocator_ZeroInvestorsYieldsSingleHouseRecord(t *testing.T) {
	alloc, house := newTestAllocator()

	result, err := alloc.Allocate(uuid.New(), d("2500.50"), nil)
	require.NoError(t, err)
	require.Len(t, result.Investments, 1)
	assert.Equal(t, house, result.Investments[0].InvestorID)
	assertDecimal(t, "2500.50", result.Investments[0].InvestmentAmount)
	assertDecimal(t, "100", result.Investments[0].ProfitPercentage.Decimal())
	assert.NoError(t, result.Verify(DefaultEpsilon))
}

func TestAllocator_RejectsOversubscription(t *testing.T) {
	alloc, _ := newTestAllocator()

	tests := []struct {
		name      string
		proposals []Proposal
	}{
		{
			name: "percentage over 100",
			proposals: []Proposal{
				{InvestorID: uuid.New(), InvestmentAmount: d("5000"), ProfitPercentage: d("60")},
				{InvestorID: uuid.New(), InvestmentAmount: d("4000"), ProfitPercentage: d("50")},
			},
		},
		{
			name: "amount over total",
			proposals: []Proposal{
				{InvestorID: uuid.New(), InvestmentAmount: d("8000"), ProfitPercentage: d("40")},
				{InvestorID: uuid.New(), InvestmentAmount: d("2500"), ProfitPercentage: d("10")},
			},
		},
		{
			name: "full percentage with excess amount",
			proposals: []Proposal{
				{InvestorID: uuid.New(), InvestmentAmount: d("10000.02"), ProfitPercentage: d("100")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := alloc.Allocate(uuid.New(), d("10000"), tt.proposals)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvestmentOversubscribed))

			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "INVESTMENT_OVERSUBSCRIBED", de.Code)
			assert.Equal(t, "10000.00", de.Details["target_amount"])
		})
	}
}

func TestAllocator_RejectsInvalidEntries(t *testing.T) {
	alloc, _ := newTestAllocator()

	tests := []struct {
		name     string
		proposal Proposal
	}{
		{"missing investor", Proposal{InvestmentAmount: d("1"), ProfitPercentage: d("1")}},
		{"negative amount", Proposal{InvestorID: uuid.New(), InvestmentAmount: d("-1"), ProfitPercentage: d("1")}},
		{"negative percentage", Proposal{InvestorID: uuid.New(), InvestmentAmount: d("1"), ProfitPercentage: d("-5")}},
		{"percentage over 100", Proposal{InvestorID: uuid.New(), InvestmentAmount: d("1"), ProfitPercentage: d("101")}},
		{"sub-cent amount", Proposal{InvestorID: uuid.New(), InvestmentAmount: d("33.333"), ProfitPercentage: d("10")}},
		{"sub-cent percentage", Proposal{InvestorID: uuid.New(), InvestmentAmount: d("10"), ProfitPercentage: d("33.335")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alloc.Allocate(uuid.New(), d("100"), []Proposal{tt.proposal})
			require.Error(t, err)
			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "VALIDATION_ERROR", de.Code)
		})
	}
}

func TestAllocator_SubCentSharesCannotRoundPastHundred(t *testing.T) {
	alloc, _ := newTestAllocator()
	proposals := make([]Proposal, 3)
	for i := range proposals {
		proposals[i] = Proposal{InvestorID: uuid.New(), InvestmentAmount: d("3333.33"), ProfitPercentage: d("33.335")}
	}

	result, err := alloc.Allocate(uuid.New(), d("9999.99"), proposals)
	assert.Nil(t, result)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "VALIDATION_ERROR", de.Code)
	assert.Equal(t, 0, de.Details["index"])
}

func TestAllocator_FullyFundedShortPercentageKeepsZeroAmountHouseRecord(t *testing.T) {
	alloc, house := newTestAllocator()

	result, err := alloc.Allocate(uuid.New(), d("10000"), []Proposal{
		{InvestorID: uuid.New(), InvestmentAmount: d("10000"), ProfitPercentage: d("50"), IsFullInvestment: true},
	})
	require.NoError(t, err)
	require.NotNil(t, result.House)
	assert.Equal(t, house, result.House.InvestorID)
	assertDecimal(t, "0", result.House.InvestmentAmount)
	assertDecimal(t, "50", result.House.ProfitPercentage.Decimal())
	assert.NoError(t, result.Verify(DefaultEpsilon))
}

func TestAllocator_SameProposalTwiceYieldsSameSet(t *testing.T) {
	alloc, _ := newTestAllocator()
	poID := uuid.New()
	proposals := []Proposal{
		{InvestorID: uuid.New(), InvestmentAmount: d("300"), ProfitPercentage: d("25")},
	}

	first, err := alloc.Allocate(poID, d("1000"), proposals)
	require.NoError(t, err)
	second, err := alloc.Allocate(poID, d("1000"), proposals)
	require.NoError(t, err)

	require.Len(t, second.Investments, len(first.Investments))
	for i := range first.Investments {
		assert.Equal(t, first.Investments[i].InvestorID, second.Investments[i].InvestorID)
		assert.True(t, first.Investments[i].InvestmentAmount.Equal(second.Investments[i].InvestmentAmount))
		assert.True(t, first.Investments[i].ProfitPercentage.Equals(second.Investments[i].ProfitPercentage))
	}
}

func TestAllocator_InvalidTarget(t *testing.T) {
	alloc, _ := newTestAllocator()

	_, err := alloc.Allocate(uuid.Nil, d("100"), nil)
	assert.Error(t, err)

	_, err = alloc.Allocate(uuid.New(), d("-1"), nil)
	assert.Error(t, err)

	_, err = alloc.Allocate(uuid.New(), d("10.005"), nil)
	assert.Error(t, err)
}

func TestNewAllocator_DefaultsEpsilon(t *testing.T) {
	alloc := NewAllocator(uuid.New(), decimal.Zero)
	assertDecimal(t, "0.01", alloc.Epsilon())
}

func TestAllocation_VerifyDetectsDrift(t *testing.T) {
	alloc, _ := newTestAllocator()
	result, err := alloc.Allocate(uuid.New(), d("1000"), nil)
	require.NoError(t, err)

	result.TargetAmount = d("1000.05")
	assert.Error(t, result.Verify(DefaultEpsilon))
}
