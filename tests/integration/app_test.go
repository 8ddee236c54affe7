package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	billingapp "github.com/stationery/backoffice/internal/application/billing"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	tradeapp "github.com/stationery/backoffice/internal/application/trade"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/infrastructure/cache"
	"github.com/stationery/backoffice/internal/infrastructure/persistence"
	"github.com/stationery/backoffice/internal/interfaces/http/handler"
	"github.com/stationery/backoffice/internal/interfaces/http/middleware"
	"github.com/stationery/backoffice/internal/interfaces/http/router"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var houseInvestorID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// testApp is the back office wired the same way the server wires it
type testApp struct {
	Investors     *financingapp.InvestorService
	Profits       *financingapp.ProfitService
	Payouts       *financingapp.PayoutService
	Statistics    *financingapp.StatisticsService
	OrderProfits  *financingapp.OrderProfitService
	Allocation    *financingapp.AllocationService
	PurchaseOrder *tradeapp.PurchaseOrderService
	SalesOrders   *tradeapp.SalesOrderService
	Bills         *billingapp.BillService
	Engine        *gin.Engine
}

func newTestApp(t *testing.T, tdb *TestDB, store shared.IdempotencyStore) *testApp {
	t.Helper()
	db := tdb.DB
	log := zap.NewNop()

	investorRepo := persistence.NewGormInvestorRepository(db)
	investmentRepo := persistence.NewGormInvestmentRepository(db)
	investorPaymentRepo := persistence.NewGormInvestorPaymentRepository(db)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db)
	inventoryRepo := persistence.NewGormInventoryItemRepository(db)
	ledger := persistence.NewGormLedgerReader(db)
	scope := persistence.NewGormTransactionScope(db)

	calculator := financing.NewProfitCalculator(financing.AttributionFull)
	allocator := financing.NewAllocator(houseInvestorID, decimal.RequireFromString("0.01"))

	app := &testApp{
		Investors:    financingapp.NewInvestorService(investorRepo, investmentRepo, log),
		Profits:      financingapp.NewProfitService(calculator, investorRepo, investmentRepo, investorPaymentRepo, ledger),
		Statistics:   financingapp.NewStatisticsService(calculator, investorRepo, investmentRepo, investorPaymentRepo, ledger),
		OrderProfits: financingapp.NewOrderProfitService(salesOrderRepo, investorRepo, investmentRepo, ledger),
		Allocation:   financingapp.NewAllocationService(allocator, investorRepo, investmentRepo, purchaseOrderRepo, log),
	}
	app.Payouts = financingapp.NewPayoutService(scope.Financing(), app.Profits, investorRepo, investorPaymentRepo, log)
	if store != nil {
		app.Payouts.SetIdempotencyStore(store, 0)
	}
	app.PurchaseOrder = tradeapp.NewPurchaseOrderService(scope.Trade(), purchaseOrderRepo,
		persistence.NewGormPurchaseOrderPaymentRepository(db), inventoryRepo, app.Allocation, log)
	app.SalesOrders = tradeapp.NewSalesOrderService(scope.Trade(), salesOrderRepo, inventoryRepo, log)
	app.Bills = billingapp.NewBillService(scope.Billing(), persistence.NewGormBillRepository(db),
		persistence.NewGormPaymentRepository(db), log)

	require.NoError(t, app.Investors.EnsureHouseInvestor(t.Context(), houseInvestorID))

	engine, err := router.NewEngine(router.EngineConfig{
		Mode:        gin.TestMode,
		ServiceName: "backoffice-test",
		MaxBodySize: 1 << 20,
		CORS:        middleware.DefaultCORSConfig(),
	}, log)
	require.NoError(t, err)
	router.Mount(router.NewRouter(engine), router.Handlers{
		Investors:      handler.NewInvestorHandler(app.Investors, app.Profits, app.Statistics),
		Payouts:        handler.NewPayoutHandler(app.Payouts),
		PurchaseOrders: handler.NewPurchaseOrderHandler(app.PurchaseOrder, app.Allocation),
		SalesOrders:    handler.NewSalesOrderHandler(app.SalesOrders, app.OrderProfits, app.Bills),
		Bills:          handler.NewBillHandler(app.Bills),
		System:         handler.NewSystemHandler("backoffice", "test", tdb),
	}).Setup()
	app.Engine = engine
	return app
}

// memoryStore returns an in-memory idempotency store closed with the test
func memoryStore(t *testing.T) shared.IdempotencyStore {
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// apiResponse is the success/error envelope with data left raw
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func (a *testApp) call(t *testing.T, method, path string, body any, headers ...string) (int, apiResponse) {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Code != http.StatusNoContent {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func dataAs[T any](t *testing.T, resp apiResponse) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out), string(resp.Data))
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
