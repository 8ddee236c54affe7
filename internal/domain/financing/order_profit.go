package financing

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderCostLine is a quotation line of a resale order resolved to its funding purchase order
type OrderCostLine struct {
	InventoryItemID uuid.UUID
	PurchaseOrderID uuid.UUID
	PurchasePrice   decimal.Decimal
	QuantitySold    decimal.Decimal
}

// InvestorRef names an investor in an aggregation result
type InvestorRef struct {
	ID      uuid.UUID
	Name    string
	IsHouse bool
}

// OrderProfitInputs is everything needed to split one resale order's profit
type OrderProfitInputs struct {
	OrderID     uuid.UUID
	BillTotals  []decimal.Decimal
	Lines       []OrderCostLine
	Investments []Investment
	Investors   map[uuid.UUID]InvestorRef
}

// InvestorOrderShare is one investor's cut of a resale order
type InvestorOrderShare struct {
	InvestorID         uuid.UUID
	InvestorName       string
	IsHouse            bool
	PurchaseOrderIDs   []uuid.UUID
	InvestorPercentage decimal.Decimal
	NormalizedShare    decimal.Decimal
	CalculatedProfit   decimal.Decimal
	// DistributedToDate has no write path yet and is always zero
	DistributedToDate decimal.Decimal
}

// OrderProfitDistribution is the per-investor split of a resale order's profit
type OrderProfitDistribution struct {
	OrderID                   uuid.UUID
	PurchaseOrderIDs          []uuid.UUID
	TotalSales                decimal.Decimal
	TotalCost                 decimal.Decimal
	TotalProfit               decimal.Decimal
	TotalInvestmentPercentage decimal.Decimal
	Normalized                bool
	Shares                    []InvestorOrderShare
}

// AggregateOrderProfit splits a resale order's profit across the investors of
// every purchase order that supplied its inventory. Percentages are scoped per
// purchase order, so when several orders contribute the sum can exceed 100 and
// is normalized back to 100.
func AggregateOrderProfit(in OrderProfitInputs) *OrderProfitDistribution {
	dist := &OrderProfitDistribution{
		OrderID:                   in.OrderID,
		PurchaseOrderIDs:          make([]uuid.UUID, 0),
		TotalSales:                decimal.Zero,
		TotalCost:                 decimal.Zero,
		TotalInvestmentPercentage: decimal.Zero,
		Shares:                    make([]InvestorOrderShare, 0),
	}

	contributing := make(map[uuid.UUID]bool)
	for _, line := range in.Lines {
		dist.TotalCost = dist.TotalCost.Add(line.PurchasePrice.Mul(line.QuantitySold))
		if line.PurchaseOrderID == uuid.Nil || contributing[line.PurchaseOrderID] {
			continue
		}
		contributing[line.PurchaseOrderID] = true
		dist.PurchaseOrderIDs = append(dist.PurchaseOrderIDs, line.PurchaseOrderID)
	}
	for _, total := range in.BillTotals {
		dist.TotalSales = dist.TotalSales.Add(total)
	}
	dist.TotalProfit = dist.TotalSales.Sub(dist.TotalCost)

	byInvestor := make(map[uuid.UUID]*InvestorOrderShare)
	order := make([]uuid.UUID, 0)
	for _, inv := range in.Investments {
		if !contributing[inv.PurchaseOrderID] {
			continue
		}
		share, ok := byInvestor[inv.InvestorID]
		if !ok {
			ref := in.Investors[inv.InvestorID]
			share = &InvestorOrderShare{
				InvestorID:         inv.InvestorID,
				InvestorName:       ref.Name,
				IsHouse:            ref.IsHouse,
				InvestorPercentage: decimal.Zero,
				DistributedToDate:  decimal.Zero,
			}
			byInvestor[inv.InvestorID] = share
			order = append(order, inv.InvestorID)
		}
		pct := inv.ProfitPercentage.Decimal()
		share.InvestorPercentage = share.InvestorPercentage.Add(pct)
		if !slices.Contains(share.PurchaseOrderIDs, inv.PurchaseOrderID) {
			share.PurchaseOrderIDs = append(share.PurchaseOrderIDs, inv.PurchaseOrderID)
		}
		dist.TotalInvestmentPercentage = dist.TotalInvestmentPercentage.Add(pct)
	}

	dist.Normalized = dist.TotalInvestmentPercentage.GreaterThan(hundred)
	for _, id := range order {
		share := byInvestor[id]
		share.NormalizedShare = share.InvestorPercentage
		if dist.Normalized {
			share.NormalizedShare = share.InvestorPercentage.Div(dist.TotalInvestmentPercentage).Mul(hundred)
		}
		share.CalculatedProfit = share.NormalizedShare.Div(hundred).Mul(dist.TotalProfit).Round(2)
		dist.Shares = append(dist.Shares, *share)
	}

	slices.SortStableFunc(dist.Shares, func(a, b InvestorOrderShare) int {
		if c := b.CalculatedProfit.Cmp(a.CalculatedProfit); c != 0 {
			return c
		}
		if c := strings.Compare(a.InvestorName, b.InvestorName); c != 0 {
			return c
		}
		return strings.Compare(a.InvestorID.String(), b.InvestorID.String())
	})
	return dist
}
