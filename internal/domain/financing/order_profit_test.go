package financing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateOrderProfit_NormalizesAcrossPurchaseOrders(t *testing.T) {
	investorX := uuid.New()
	po1, po2 := uuid.New(), uuid.New()

	dist := AggregateOrderProfit(OrderProfitInputs{
		OrderID:    uuid.New(),
		BillTotals: []decimal.Decimal{d("1500"), d("500")},
		Lines: []OrderCostLine{
			{InventoryItemID: uuid.New(), PurchaseOrderID: po1, PurchasePrice: d("10"), QuantitySold: d("50")},
			{InventoryItemID: uuid.New(), PurchaseOrderID: po2, PurchasePrice: d("25"), QuantitySold: d("20")},
		},
		Investments: []Investment{
			testInvestment(t, investorX, po1, "700", "70"),
			testInvestment(t, investorX, po2, "600", "60"),
		},
		Investors: map[uuid.UUID]InvestorRef{investorX: {ID: investorX, Name: "X"}},
	})

	assertDecimal(t, "2000", dist.TotalSales)
	assertDecimal(t, "1000", dist.TotalCost)
	assertDecimal(t, "1000", dist.TotalProfit)
	assertDecimal(t, "130", dist.TotalInvestmentPercentage)
	assert.True(t, dist.Normalized)
	assert.Len(t, dist.PurchaseOrderIDs, 2)

	require.Len(t, dist.Shares, 1)
	share := dist.Shares[0]
	assert.Equal(t, "X", share.InvestorName)
	assertDecimal(t, "130", share.InvestorPercentage)
	assertDecimal(t, "100", share.NormalizedShare)
	assertDecimal(t, "1000", share.CalculatedProfit)
	assertDecimal(t, "0", share.DistributedToDate)
	assert.ElementsMatch(t, []uuid.UUID{po1, po2}, share.PurchaseOrderIDs)
}

func TestAggregateOrderProfit_ProportionalReduction(t *testing.T) {
	x, house := uuid.New(), uuid.New()
	po1, po2 := uuid.New(), uuid.New()

	dist := AggregateOrderProfit(OrderProfitInputs{
		OrderID:    uuid.New(),
		BillTotals: []decimal.Decimal{d("3000")},
		Lines: []OrderCostLine{
			{PurchaseOrderID: po1, PurchasePrice: d("10"), QuantitySold: d("100")},
			{PurchaseOrderID: po2, PurchasePrice: d("10"), QuantitySold: d("100")},
		},
		Investments: []Investment{
			testInvestment(t, x, po1, "700", "70"),
			testInvestment(t, house, po1, "300", "30"),
			testInvestment(t, x, po2, "600", "60"),
			testInvestment(t, house, po2, "400", "40"),
		},
		Investors: map[uuid.UUID]InvestorRef{
			x:     {ID: x, Name: "X"},
			house: {ID: house, Name: HouseInvestorName, IsHouse: true},
		},
	})

	assertDecimal(t, "1000", dist.TotalProfit)
	assertDecimal(t, "200", dist.TotalInvestmentPercentage)
	require.Len(t, dist.Shares, 2)

	assert.Equal(t, x, dist.Shares[0].InvestorID)
	assertDecimal(t, "65", dist.Shares[0].NormalizedShare)
	assertDecimal(t, "650", dist.Shares[0].CalculatedProfit)

	assert.True(t, dist.Shares[1].IsHouse)
	assertDecimal(t, "35", dist.Shares[1].NormalizedShare)
	assertDecimal(t, "350", dist.Shares[1].CalculatedProfit)
}

func TestAggregateOrderProfit_NoNormalizationAtOrBelow100(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	po := uuid.New()

	dist := AggregateOrderProfit(OrderProfitInputs{
		BillTotals: []decimal.Decimal{d("100")},
		Lines:      []OrderCostLine{{PurchaseOrderID: po, PurchasePrice: d("1"), QuantitySold: d("1")}},
		Investments: []Investment{
			testInvestment(t, a, po, "1", "33.333"),
			testInvestment(t, b, po, "1", "66.667"),
		},
		Investors: map[uuid.UUID]InvestorRef{a: {Name: "A"}, b: {Name: "B"}},
	})

	assert.False(t, dist.Normalized)
	require.Len(t, dist.Shares, 2)
	assert.Equal(t, b, dist.Shares[0].InvestorID)
	assertDecimal(t, "66.667", dist.Shares[0].NormalizedShare)
	assertDecimal(t, "66", dist.Shares[0].CalculatedProfit)
	assertDecimal(t, "33", dist.Shares[1].CalculatedProfit)
}

func TestAggregateOrderProfit_IgnoresNonContributingOrders(t *testing.T) {
	a := uuid.New()
	po, unrelated := uuid.New(), uuid.New()

	dist := AggregateOrderProfit(OrderProfitInputs{
		BillTotals: []decimal.Decimal{d("50")},
		Lines:      []OrderCostLine{{PurchaseOrderID: po, PurchasePrice: d("2"), QuantitySold: d("10")}},
		Investments: []Investment{
			testInvestment(t, a, po, "20", "100"),
			testInvestment(t, a, unrelated, "20", "100"),
		},
	})

	assertDecimal(t, "100", dist.TotalInvestmentPercentage)
	require.Len(t, dist.Shares, 1)
	assertDecimal(t, "30", dist.Shares[0].CalculatedProfit)
}

func TestAggregateOrderProfit_EmptyOrder(t *testing.T) {
	dist := AggregateOrderProfit(OrderProfitInputs{OrderID: uuid.New()})

	assertDecimal(t, "0", dist.TotalProfit)
	assert.Empty(t, dist.Shares)
	assert.False(t, dist.Normalized)
}

func TestAggregateOrderProfit_LossIsShared(t *testing.T) {
	a := uuid.New()
	po := uuid.New()

	dist := AggregateOrderProfit(OrderProfitInputs{
		BillTotals:  []decimal.Decimal{d("80")},
		Lines:       []OrderCostLine{{PurchaseOrderID: po, PurchasePrice: d("10"), QuantitySold: d("10")}},
		Investments: []Investment{testInvestment(t, a, po, "100", "50")},
	})

	assertDecimal(t, "-20", dist.TotalProfit)
	assertDecimal(t, "-10", dist.Shares[0].CalculatedProfit)
}
