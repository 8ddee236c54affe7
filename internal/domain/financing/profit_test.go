package financing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	investorID uuid.UUID
	poID       uuid.UUID
	itemA      uuid.UUID
	itemB      uuid.UUID
	billID     uuid.UUID
	inputs     ProfitInputs
}

func testInvestment(t *testing.T, investorID, poID uuid.UUID, amount, pct string) Investment {
	t.Helper()
	inv, err := NewInvestment(poID, investorID, d(amount), valueobject.MustNewPercentage(d(pct)), false)
	require.NoError(t, err)
	return *inv
}

// One purchase order produced two items sold on a single bill (600 + 400)
// with 500 collected so far. The investor holds 50%.
func newLedgerFixture(t *testing.T) *ledgerFixture {
	f := &ledgerFixture{
		investorID: uuid.New(),
		poID:       uuid.New(),
		itemA:      uuid.New(),
		itemB:      uuid.New(),
		billID:     uuid.New(),
	}
	f.inputs = ProfitInputs{
		Investments: []Investment{testInvestment(t, f.investorID, f.poID, "5000", "50")},
		Lots: []StockLot{
			{InventoryItemID: f.itemA, PurchaseOrderID: f.poID, PurchasePrice: d("10")},
			{InventoryItemID: f.itemB, PurchaseOrderID: f.poID, PurchasePrice: d("20")},
		},
		SaleLines: []SaleLine{
			{BillItemID: uuid.New(), BillID: f.billID, InventoryItemID: f.itemA, Quantity: d("30"), TotalPrice: d("600")},
			{BillItemID: uuid.New(), BillID: f.billID, InventoryItemID: f.itemB, Quantity: d("10"), TotalPrice: d("400")},
		},
		Bills:     []BillCollection{{BillID: f.billID, TotalAmount: d("1000"), Collected: d("500")}},
		TotalPaid: decimal.Zero,
	}
	return f
}

func TestProfitCalculator_FullAttribution(t *testing.T) {
	f := newLedgerFixture(t)
	calc := NewProfitCalculator(AttributionFull)

	profit := calc.Calculate(f.investorID, f.inputs)

	require.Len(t, profit.Orders, 1)
	assertDecimal(t, "1000", profit.Orders[0].Revenue)
	// each of the two bill items is credited with the whole 500 collected
	assertDecimal(t, "1000", profit.Orders[0].Collected)
	assertDecimal(t, "500", profit.TotalProfitEarned)
	assertDecimal(t, "500", profit.PayableNowRaw)
	assertDecimal(t, "500", profit.PayableNow)
	assertDecimal(t, "500", profit.TotalDue)
	assertDecimal(t, "5000", profit.TotalInvested)
}

func TestProfitCalculator_ProportionalAttribution(t *testing.T) {
	f := newLedgerFixture(t)
	calc := NewProfitCalculator(AttributionProportional)

	profit := calc.Calculate(f.investorID, f.inputs)

	assertDecimal(t, "1000", profit.Orders[0].Revenue)
	assertDecimal(t, "500", profit.Orders[0].Collected)
	assertDecimal(t, "500", profit.TotalProfitEarned)
	assertDecimal(t, "250", profit.PayableNowRaw)
	assertDecimal(t, "250", profit.PayableNow)
}

func TestProfitCalculator_PaidReducesPayableAndDue(t *testing.T) {
	f := newLedgerFixture(t)
	f.inputs.TotalPaid = d("120")
	calc := NewProfitCalculator(AttributionProportional)

	profit := calc.Calculate(f.investorID, f.inputs)

	assertDecimal(t, "380", profit.TotalDue)
	assertDecimal(t, "130", profit.PayableNow)
}

func TestProfitCalculator_PayableNeverNegative(t *testing.T) {
	f := newLedgerFixture(t)
	f.inputs.TotalPaid = d("400")
	calc := NewProfitCalculator(AttributionProportional)

	profit := calc.Calculate(f.investorID, f.inputs)

	assertDecimal(t, "0", profit.PayableNow)
	assertDecimal(t, "100", profit.TotalDue)
}

func TestProfitCalculator_PayoutCeilingScenario(t *testing.T) {
	investorID := uuid.New()
	poID := uuid.New()
	item := uuid.New()
	bill := uuid.New()
	calc := NewProfitCalculator(AttributionFull)

	// 100% share, revenue 1000 invoiced, 400 collected
	profit := calc.Calculate(investorID, ProfitInputs{
		Investments: []Investment{testInvestment(t, investorID, poID, "800", "100")},
		Lots:        []StockLot{{InventoryItemID: item, PurchaseOrderID: poID}},
		SaleLines:   []SaleLine{{BillItemID: uuid.New(), BillID: bill, InventoryItemID: item, TotalPrice: d("1000")}},
		Bills:       []BillCollection{{BillID: bill, TotalAmount: d("1000"), Collected: d("400")}},
		TotalPaid:   decimal.Zero,
	})

	assertDecimal(t, "1000", profit.TotalProfitEarned)
	assertDecimal(t, "400", profit.PayableNowRaw)
	assertDecimal(t, "400", profit.PayableNow)

	assert.Error(t, CheckPayout(profit, d("500")))
	assert.NoError(t, CheckPayout(profit, d("400")))
}

func TestProfitCalculator_IgnoresOtherInvestorsAndUnsoldStock(t *testing.T) {
	f := newLedgerFixture(t)
	other := uuid.New()
	otherPO := uuid.New()
	f.inputs.Investments = append(f.inputs.Investments,
		testInvestment(t, other, f.poID, "5000", "50"),
		testInvestment(t, f.investorID, otherPO, "100", "10"),
	)
	f.inputs.Lots = append(f.inputs.Lots, StockLot{InventoryItemID: uuid.New(), PurchaseOrderID: otherPO})

	profit := NewProfitCalculator(AttributionFull).Calculate(f.investorID, f.inputs)

	require.Len(t, profit.Orders, 2)
	assertDecimal(t, "0", profit.Orders[1].Revenue)
	assertDecimal(t, "500", profit.TotalProfitEarned)
	assertDecimal(t, "5100", profit.TotalInvested)
}

func TestProfitCalculator_PayableTruncatedToCents(t *testing.T) {
	investorID := uuid.New()
	poID := uuid.New()
	item := uuid.New()
	bill := uuid.New()

	profit := NewProfitCalculator(AttributionFull).Calculate(investorID, ProfitInputs{
		Investments: []Investment{testInvestment(t, investorID, poID, "1", "33.333")},
		Lots:        []StockLot{{InventoryItemID: item, PurchaseOrderID: poID}},
		SaleLines:   []SaleLine{{BillID: bill, InventoryItemID: item, TotalPrice: d("100")}},
		Bills:       []BillCollection{{BillID: bill, TotalAmount: d("100"), Collected: d("100")}},
	})

	assertDecimal(t, "33.333", profit.PayableNowRaw)
	assertDecimal(t, "33.33", profit.PayableNow)
}

func TestParseCollectionAttribution(t *testing.T) {
	tests := []struct {
		in      string
		want    CollectionAttribution
		wantErr bool
	}{
		{"", AttributionFull, false},
		{"full", AttributionFull, false},
		{" Proportional ", AttributionProportional, false},
		{"pro-rata", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCollectionAttribution(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
