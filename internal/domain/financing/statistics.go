package financing

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EquityShare is one investor's slice of all money invested
type EquityShare struct {
	InvestorID        uuid.UUID
	InvestorName      string
	IsHouse           bool
	IsActive          bool
	TotalInvested     decimal.Decimal
	SharePercentage   decimal.Decimal
	TotalProfitEarned decimal.Decimal
	ROI               decimal.Decimal
}

// InvestorStatistics is a read-only roll-up of every investor statement
type InvestorStatistics struct {
	TotalInvestors    int
	ActiveInvestors   int
	InactiveInvestors int
	TotalInvested     decimal.Decimal
	TotalProfitEarned decimal.Decimal
	TotalPaid         decimal.Decimal
	TotalDue          decimal.Decimal
	TotalPayableNow   decimal.Decimal
	OverallROI        decimal.Decimal
	Equity            []EquityShare
}

// InvestorSummary pairs an investor with their computed statement
type InvestorSummary struct {
	Investor Investor
	Profit   *InvestorProfit
}

// BuildStatistics derives the statistics view from investor statements.
// The house investor is part of the equity split but not of the investor counts.
func BuildStatistics(summaries []InvestorSummary) *InvestorStatistics {
	stats := &InvestorStatistics{
		TotalInvested:     decimal.Zero,
		TotalProfitEarned: decimal.Zero,
		TotalPaid:         decimal.Zero,
		TotalDue:          decimal.Zero,
		TotalPayableNow:   decimal.Zero,
		OverallROI:        decimal.Zero,
		Equity:            make([]EquityShare, 0, len(summaries)),
	}

	for _, s := range summaries {
		if !s.Investor.IsHouse {
			stats.TotalInvestors++
			if s.Investor.IsActive {
				stats.ActiveInvestors++
			} else {
				stats.InactiveInvestors++
			}
		}
		if s.Profit == nil {
			continue
		}
		stats.TotalInvested = stats.TotalInvested.Add(s.Profit.TotalInvested)
		stats.TotalProfitEarned = stats.TotalProfitEarned.Add(s.Profit.TotalProfitEarned)
		stats.TotalPaid = stats.TotalPaid.Add(s.Profit.TotalPaid)
		stats.TotalDue = stats.TotalDue.Add(s.Profit.TotalDue)
		stats.TotalPayableNow = stats.TotalPayableNow.Add(s.Profit.PayableNow)
	}

	for _, s := range summaries {
		if s.Profit == nil || s.Profit.TotalInvested.IsZero() {
			continue
		}
		share := decimal.Zero
		if stats.TotalInvested.IsPositive() {
			share = s.Profit.TotalInvested.Div(stats.TotalInvested).Mul(hundred).Round(2)
		}
		stats.Equity = append(stats.Equity, EquityShare{
			InvestorID:        s.Investor.ID,
			InvestorName:      s.Investor.Name,
			IsHouse:           s.Investor.IsHouse,
			IsActive:          s.Investor.IsActive,
			TotalInvested:     s.Profit.TotalInvested,
			SharePercentage:   share,
			TotalProfitEarned: s.Profit.TotalProfitEarned.Round(2),
			ROI:               ReturnOnInvestment(s.Profit.TotalProfitEarned, s.Profit.TotalInvested),
		})
	}
	slices.SortStableFunc(stats.Equity, func(a, b EquityShare) int {
		return b.TotalInvested.Cmp(a.TotalInvested)
	})

	stats.OverallROI = ReturnOnInvestment(stats.TotalProfitEarned, stats.TotalInvested)
	stats.TotalProfitEarned = stats.TotalProfitEarned.Round(2)
	stats.TotalDue = stats.TotalDue.Round(2)
	return stats
}

// ReturnOnInvestment returns profit as a percentage of money invested, rounded to 2 places
func ReturnOnInvestment(profit, invested decimal.Decimal) decimal.Decimal {
	if !invested.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(invested).Mul(hundred).Round(2)
}
