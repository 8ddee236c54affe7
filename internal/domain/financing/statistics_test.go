package financing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStatistics(t *testing.T) {
	active, err := NewInvestor("Alice", ContactDetails{}, BankDetails{})
	require.NoError(t, err)
	inactive, err := NewInvestor("Bob", ContactDetails{}, BankDetails{})
	require.NoError(t, err)
	require.NoError(t, inactive.Deactivate())
	house := NewHouseInvestor(uuid.New())

	stats := BuildStatistics([]InvestorSummary{
		{Investor: *active, Profit: &InvestorProfit{
			TotalInvested: d("6000"), TotalProfitEarned: d("600"), TotalPaid: d("100"), TotalDue: d("500"), PayableNow: d("200"),
		}},
		{Investor: *inactive, Profit: &InvestorProfit{
			TotalInvested: d("0"), TotalProfitEarned: d("0"), TotalPaid: d("0"), TotalDue: d("0"), PayableNow: d("0"),
		}},
		{Investor: *house, Profit: &InvestorProfit{
			TotalInvested: d("4000"), TotalProfitEarned: d("200"), TotalPaid: d("0"), TotalDue: d("200"), PayableNow: d("50"),
		}},
	})

	assert.Equal(t, 2, stats.TotalInvestors)
	assert.Equal(t, 1, stats.ActiveInvestors)
	assert.Equal(t, 1, stats.InactiveInvestors)
	assertDecimal(t, "10000", stats.TotalInvested)
	assertDecimal(t, "800", stats.TotalProfitEarned)
	assertDecimal(t, "100", stats.TotalPaid)
	assertDecimal(t, "700", stats.TotalDue)
	assertDecimal(t, "250", stats.TotalPayableNow)
	assertDecimal(t, "8", stats.OverallROI)

	require.Len(t, stats.Equity, 2)
	assert.Equal(t, "Alice", stats.Equity[0].InvestorName)
	assertDecimal(t, "60", stats.Equity[0].SharePercentage)
	assertDecimal(t, "10", stats.Equity[0].ROI)
	assert.True(t, stats.Equity[1].IsHouse)
	assertDecimal(t, "40", stats.Equity[1].SharePercentage)
	assertDecimal(t, "5", stats.Equity[1].ROI)
}

func TestReturnOnInvestment_ZeroInvested(t *testing.T) {
	assertDecimal(t, "0", ReturnOnInvestment(d("10"), d("0")))
}
