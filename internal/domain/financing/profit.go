package financing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectionAttribution selects how a bill's collected cash is attributed to its line items
type CollectionAttribution string

const (
	// AttributionFull credits every bill item with the whole of each payment on its bill.
	// It reproduces legacy statement figures and over-counts bills with several items.
	AttributionFull CollectionAttribution = "full"
	// AttributionProportional weights each payment by the item's share of the bill total
	AttributionProportional CollectionAttribution = "proportional"
)

// ParseCollectionAttribution parses a configured attribution mode; empty means full
func ParseCollectionAttribution(s string) (CollectionAttribution, error) {
	switch CollectionAttribution(strings.ToLower(strings.TrimSpace(s))) {
	case "", AttributionFull:
		return AttributionFull, nil
	case AttributionProportional:
		return AttributionProportional, nil
	default:
		return "", fmt.Errorf("unknown collection attribution %q", s)
	}
}

// StockLot is an inventory item seen from the financing side: which purchase order funded it
type StockLot struct {
	InventoryItemID uuid.UUID
	PurchaseOrderID uuid.UUID
	PurchasePrice   decimal.Decimal
}

// SaleLine is a bill item that sold units of a stock lot
type SaleLine struct {
	BillItemID      uuid.UUID
	BillID          uuid.UUID
	InventoryItemID uuid.UUID
	Quantity        decimal.Decimal
	TotalPrice      decimal.Decimal
}

// BillCollection is a bill's total and the cash collected against it so far
type BillCollection struct {
	BillID      uuid.UUID
	TotalAmount decimal.Decimal
	Collected   decimal.Decimal
}

// ProfitInputs is the slice of the ledger needed to compute one investor's profit
type ProfitInputs struct {
	Investments []Investment
	Lots        []StockLot
	SaleLines   []SaleLine
	Bills       []BillCollection
	TotalPaid   decimal.Decimal
}

// PurchaseOrderProfit is an investor's position on a single funded purchase order
type PurchaseOrderProfit struct {
	InvestmentID     uuid.UUID
	PurchaseOrderID  uuid.UUID
	InvestmentAmount decimal.Decimal
	ProfitPercentage decimal.Decimal
	Revenue          decimal.Decimal
	Collected        decimal.Decimal
	ProfitEarned     decimal.Decimal
	PayableNow       decimal.Decimal
}

// InvestorProfit is the statement for one investor across all of their investments
type InvestorProfit struct {
	InvestorID        uuid.UUID
	Orders            []PurchaseOrderProfit
	TotalInvested     decimal.Decimal
	TotalProfitEarned decimal.Decimal
	PayableNowRaw     decimal.Decimal
	TotalPaid         decimal.Decimal
	TotalDue          decimal.Decimal
	// PayableNow is truncated to cents so a payout of exactly this amount never overdraws collections
	PayableNow decimal.Decimal
}

// ProfitCalculator walks investments through inventory, bills and payments
type ProfitCalculator struct {
	attribution CollectionAttribution
}

// NewProfitCalculator creates a calculator using the given attribution mode
func NewProfitCalculator(attribution CollectionAttribution) *ProfitCalculator {
	if attribution == "" {
		attribution = AttributionFull
	}
	return &ProfitCalculator{attribution: attribution}
}

// Attribution returns the configured attribution mode
func (c *ProfitCalculator) Attribution() CollectionAttribution {
	return c.attribution
}

type poTotals struct {
	revenue   decimal.Decimal
	collected decimal.Decimal
}

// Calculate computes profit earned, amount due and amount payable now for one investor
func (c *ProfitCalculator) Calculate(investorID uuid.UUID, in ProfitInputs) *InvestorProfit {
	lotsByPO := make(map[uuid.UUID][]StockLot)
	for _, lot := range in.Lots {
		lotsByPO[lot.PurchaseOrderID] = append(lotsByPO[lot.PurchaseOrderID], lot)
	}
	linesByItem := make(map[uuid.UUID][]SaleLine)
	for _, line := range in.SaleLines {
		linesByItem[line.InventoryItemID] = append(linesByItem[line.InventoryItemID], line)
	}
	bills := make(map[uuid.UUID]BillCollection, len(in.Bills))
	for _, b := range in.Bills {
		bills[b.BillID] = b
	}

	totalsByPO := make(map[uuid.UUID]poTotals)
	result := &InvestorProfit{
		InvestorID:        investorID,
		Orders:            make([]PurchaseOrderProfit, 0, len(in.Investments)),
		TotalInvested:     decimal.Zero,
		TotalProfitEarned: decimal.Zero,
		PayableNowRaw:     decimal.Zero,
		TotalPaid:         in.TotalPaid,
	}

	for _, inv := range in.Investments {
		if inv.InvestorID != investorID {
			continue
		}
		totals, ok := totalsByPO[inv.PurchaseOrderID]
		if !ok {
			totals = c.purchaseOrderTotals(lotsByPO[inv.PurchaseOrderID], linesByItem, bills)
			totalsByPO[inv.PurchaseOrderID] = totals
		}
		share := inv.Share()
		po := PurchaseOrderProfit{
			InvestmentID:     inv.ID,
			PurchaseOrderID:  inv.PurchaseOrderID,
			InvestmentAmount: inv.InvestmentAmount,
			ProfitPercentage: inv.ProfitPercentage.Decimal(),
			Revenue:          totals.revenue,
			Collected:        totals.collected,
			ProfitEarned:     totals.revenue.Mul(share),
			PayableNow:       totals.collected.Mul(share),
		}
		result.Orders = append(result.Orders, po)
		result.TotalInvested = result.TotalInvested.Add(inv.InvestmentAmount)
		result.TotalProfitEarned = result.TotalProfitEarned.Add(po.ProfitEarned)
		result.PayableNowRaw = result.PayableNowRaw.Add(po.PayableNow)
	}

	result.TotalDue = result.TotalProfitEarned.Sub(result.TotalPaid)
	payable := result.PayableNowRaw.Sub(result.TotalPaid)
	if payable.IsNegative() {
		payable = decimal.Zero
	}
	result.PayableNow = payable.Truncate(2)
	return result
}

func (c *ProfitCalculator) purchaseOrderTotals(lots []StockLot, linesByItem map[uuid.UUID][]SaleLine, bills map[uuid.UUID]BillCollection) poTotals {
	totals := poTotals{revenue: decimal.Zero, collected: decimal.Zero}
	for _, lot := range lots {
		for _, line := range linesByItem[lot.InventoryItemID] {
			totals.revenue = totals.revenue.Add(line.TotalPrice)
			bill, ok := bills[line.BillID]
			if !ok {
				continue
			}
			totals.collected = totals.collected.Add(c.attributed(line, bill))
		}
	}
	return totals
}

func (c *ProfitCalculator) attributed(line SaleLine, bill BillCollection) decimal.Decimal {
	if c.attribution != AttributionProportional {
		return bill.Collected
	}
	if !bill.TotalAmount.IsPositive() {
		return decimal.Zero
	}
	return bill.Collected.Mul(line.TotalPrice).Div(bill.TotalAmount)
}
