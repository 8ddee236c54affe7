package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/stationery/backoffice/internal/application/billing"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	tradeapp "github.com/stationery/backoffice/internal/application/trade"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/interfaces/http/dto"
	"github.com/stationery/backoffice/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestEngine returns an engine with request IDs and the idempotency header installed
func newTestEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.IdempotencyKey())
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// envelope decodes the standard response wrapper, keeping data raw
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Details   any    `json:"details"`
		RequestID string `json:"request_id"`
	} `json:"error"`
	Meta *dto.Meta `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// ==================== financing mocks ====================

type MockInvestorService struct {
	mock.Mock
}

func (m *MockInvestorService) Create(ctx context.Context, req financingapp.CreateInvestorRequest) (*financingapp.InvestorResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financingapp.InvestorResponse), args.Error(1)
}

func (m *MockInvestorService) GetByID(ctx context.Context, id uuid.UUID) (*financingapp.InvestorResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financingapp.InvestorResponse), args.Error(1)
}

func (m *MockInvestorService) List(ctx context.Context, filter financingapp.InvestorListFilter) ([]financingapp.InvestorResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]financingapp.InvestorResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvestorService) Update(ctx context.Context, id uuid.UUID, req financingapp.UpdateInvestorRequest) (*financingapp.InvestorResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financingapp.InvestorResponse), args.Error(1)
}

func (m *MockInvestorService) Activate(ctx context.Context, id uuid.UUID) (*financingapp.InvestorResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financingapp.InvestorResponse), args.Error(1)
}

func (m *MockInvestorService) Deactivate(ctx context.Context, id uuid.UUID) (*financingapp.InvestorResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financingapp.InvestorResponse), args.Error(1)
}

func (m *MockInvestorService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) Statement(ctx context.Context, investorID uuid.UUID) (*financingapp.StatementResponse, error) {
	args := m.Called(ctx, investorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financingapp.StatementResponse), args.Error(1)
}

type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) Statistics(ctx context.Context) (*financingapp.StatisticsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financingapp.StatisticsResponse), args.Error(1)
}

type MockPayoutService struct {
	mock.Mock
}

func (m *MockPayoutService) Payout(ctx context.Context, investorID uuid.UUID, req financingapp.PayoutRequest) (*financingapp.PayoutResponse, error) {
	args := m.Called(ctx, investorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financingapp.PayoutResponse), args.Error(1)
}

func (m *MockPayoutService) ListPayouts(ctx context.Context, investorID uuid.UUID, filter shared.Filter) ([]financingapp.PayoutResponse, int64, error) {
	args := m.Called(ctx, investorID, filter)
	return args.Get(0).([]financingapp.PayoutResponse), args.Get(1).(int64), args.Error(2)
}

type MockInvestmentLister struct {
	mock.Mock
}

func (m *MockInvestmentLister) Investments(ctx context.Context, purchaseOrderID uuid.UUID) ([]financingapp.InvestmentResponse, error) {
	args := m.Called(ctx, purchaseOrderID)
	return args.Get(0).([]financingapp.InvestmentResponse), args.Error(1)
}

type MockProfitDistributionService struct {
	mock.Mock
}

func (m *MockProfitDistributionService) Distribution(ctx context.Context, salesOrderID uuid.UUID) (*financingapp.OrderProfitResponse, error) {
	args := m.Called(ctx, salesOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financingapp.OrderProfitResponse), args.Error(1)
}

// ==================== trade mocks ====================

type MockPurchaseOrderService struct {
	mock.Mock
}

func (m *MockPurchaseOrderService) Create(ctx context.Context, req tradeapp.CreatePurchaseOrderRequest) (*tradeapp.PurchaseOrderWriteResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.PurchaseOrderWriteResponse), args.Error(1)
}

func (m *MockPurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*tradeapp.PurchaseOrderResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.PurchaseOrderResponse), args.Error(1)
}

func (m *MockPurchaseOrderService) List(ctx context.Context, filter tradeapp.PurchaseOrderListFilter) ([]tradeapp.PurchaseOrderResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tradeapp.PurchaseOrderResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseOrderService) Update(ctx context.Context, orderID uuid.UUID, req tradeapp.UpdatePurchaseOrderRequest) (*tradeapp.PurchaseOrderWriteResponse, error) {
	args := m.Called(ctx, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.PurchaseOrderWriteResponse), args.Error(1)
}

func (m *MockPurchaseOrderService) Approve(ctx context.Context, orderID uuid.UUID) (*tradeapp.PurchaseOrderResponse, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *MockPurchaseOrderService) MarkOrdered(ctx context.Context, orderID uuid.UUID) (*tradeapp.PurchaseOrderResponse, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *MockPurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req tradeapp.CancelPurchaseOrderRequest) (*tradeapp.PurchaseOrderResponse, error) {
	return m.order(m.Called(ctx, orderID, req))
}

func (m *MockPurchaseOrderService) order(args mock.Arguments) (*tradeapp.PurchaseOrderResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.PurchaseOrderResponse), args.Error(1)
}

func (m *MockPurchaseOrderService) Receive(ctx context.Context, orderID uuid.UUID) (*tradeapp.ReceiveResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.ReceiveResponse), args.Error(1)
}

func (m *MockPurchaseOrderService) Inventory(ctx context.Context, orderID uuid.UUID) ([]tradeapp.InventoryItemResponse, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]tradeapp.InventoryItemResponse), args.Error(1)
}

func (m *MockPurchaseOrderService) AddPayment(ctx context.Context, orderID uuid.UUID, req tradeapp.VendorPaymentRequest) (*tradeapp.VendorPaymentResultResponse, error) {
	return m.payment(m.Called(ctx, orderID, req))
}

func (m *MockPurchaseOrderService) EditPayment(ctx context.Context, orderID, paymentID uuid.UUID, req tradeapp.VendorPaymentRequest) (*tradeapp.VendorPaymentResultResponse, error) {
	return m.payment(m.Called(ctx, orderID, paymentID, req))
}

func (m *MockPurchaseOrderService) DeletePayment(ctx context.Context, orderID, paymentID uuid.UUID) (*tradeapp.VendorPaymentResultResponse, error) {
	return m.payment(m.Called(ctx, orderID, paymentID))
}

func (m *MockPurchaseOrderService) payment(args mock.Arguments) (*tradeapp.VendorPaymentResultResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.VendorPaymentResultResponse), args.Error(1)
}

type MockSalesOrderService struct {
	mock.Mock
}

func (m *MockSalesOrderService) Create(ctx context.Context, req tradeapp.CreateSalesOrderRequest) (*tradeapp.SalesOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SalesOrderResponse), args.Error(1)
}

func (m *MockSalesOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*tradeapp.SalesOrderResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SalesOrderResponse), args.Error(1)
}

func (m *MockSalesOrderService) List(ctx context.Context, filter tradeapp.SalesOrderListFilter) ([]tradeapp.SalesOrderResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tradeapp.SalesOrderResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalesOrderService) AvailableInventory(ctx context.Context) ([]tradeapp.InventoryItemResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tradeapp.InventoryItemResponse), args.Error(1)
}

// ==================== billing mocks ====================

type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) Issue(ctx context.Context, req billingapp.IssueBillRequest) (*billingapp.BillResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.BillResponse), args.Error(1)
}

func (m *MockBillService) GetByID(ctx context.Context, billID uuid.UUID) (*billingapp.BillResponse, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.BillResponse), args.Error(1)
}

func (m *MockBillService) RecordPayment(ctx context.Context, billID uuid.UUID, req billingapp.RecordBillPaymentRequest) (*billingapp.RecordBillPaymentResponse, error) {
	args := m.Called(ctx, billID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.RecordBillPaymentResponse), args.Error(1)
}

func (m *MockBillService) ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]billingapp.BillResponse, error) {
	args := m.Called(ctx, salesOrderID)
	return args.Get(0).([]billingapp.BillResponse), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }
