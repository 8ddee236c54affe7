package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	billingapp "github.com/stationery/backoffice/internal/application/billing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupBillHandler(t *testing.T) (*MockBillService, *BillHandler) {
	t.Helper()
	bills := new(MockBillService)
	t.Cleanup(func() { bills.AssertExpectations(t) })
	return bills, NewBillHandler(bills)
}

func TestBillHandler_Issue(t *testing.T) {
	bills, h := setupBillHandler(t)
	engine := newTestEngine()
	engine.POST("/bills", h.Issue)

	salesOrderID := uuid.New()
	bills.On("Issue", mock.Anything, billingapp.IssueBillRequest{SalesOrderID: salesOrderID}).
		Return(&billingapp.BillResponse{ID: uuid.New(), BillNumber: "BILL-0001", SalesOrderID: salesOrderID, Status: "UNPAID"}, nil)

	w := doJSON(t, engine, http.MethodPost, "/bills", map[string]any{"sales_order_id": salesOrderID.String()})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "BILL-0001")
}

func TestBillHandler_Issue_Conflicts(t *testing.T) {
	bills, h := setupBillHandler(t)
	engine := newTestEngine()
	engine.POST("/bills", h.Issue)

	bills.On("Issue", mock.Anything, mock.Anything).Return(nil, shared.ErrAlreadyExists)

	w := doJSON(t, engine, http.MethodPost, "/bills", map[string]any{
		"sales_order_id": uuid.NewString(),
		"bill_number":    "BILL-0001",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBillHandler_GetByID(t *testing.T) {
	bills, h := setupBillHandler(t)
	engine := newTestEngine()
	engine.GET("/bills/:id", h.GetByID)

	id := uuid.New()
	bills.On("GetByID", mock.Anything, id).Return(nil, shared.NewDomainError("BILL_NOT_FOUND", "Bill not found"))

	w := doJSON(t, engine, http.MethodGet, "/bills/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBillHandler_RecordPayment(t *testing.T) {
	bills, h := setupBillHandler(t)
	engine := newTestEngine()
	engine.POST("/bills/:id/payments", h.RecordPayment)

	id := uuid.New()
	bills.On("RecordPayment", mock.Anything, id, mock.MatchedBy(func(req billingapp.RecordBillPaymentRequest) bool {
		return req.Method == "CASH" && req.Amount.Equal(decimal.NewFromInt(60))
	})).Return(&billingapp.RecordBillPaymentResponse{
		BillStatus:  "PARTIAL",
		PaidAmount:  decimal.NewFromInt(60),
		Outstanding: decimal.NewFromInt(60),
	}, nil)

	w := doJSON(t, engine, http.MethodPost, "/bills/"+id.String()+"/payments", map[string]any{"amount": "60", "method": "CASH"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"bill_status":"PARTIAL"`)

	w = doJSON(t, engine, http.MethodPost, "/bills/"+id.String()+"/payments", map[string]any{"amount": "60"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
