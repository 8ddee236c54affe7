package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPayoutHandler(t *testing.T) (*MockPayoutService, *PayoutHandler) {
	t.Helper()
	payouts := new(MockPayoutService)
	t.Cleanup(func() { payouts.AssertExpectations(t) })
	return payouts, NewPayoutHandler(payouts)
}

func TestPayoutHandler_Create_PassesIdempotencyKey(t *testing.T) {
	payouts, h := setupPayoutHandler(t)
	engine := newTestEngine()
	engine.POST("/investors/:id/payouts", h.Create)

	investorID := uuid.New()
	payouts.On("Payout", mock.Anything, investorID, mock.MatchedBy(func(req financingapp.PayoutRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString("250.75")) &&
			req.Description == "March share" &&
			req.IdempotencyKey == "pay-2024-03"
	})).Return(&financingapp.PayoutResponse{
		ID:             uuid.New(),
		InvestorID:     investorID,
		Amount:         decimal.RequireFromString("250.75"),
		PaidAt:         time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC),
		PayableBefore:  decimal.RequireFromString("300"),
		PayableAfter:   decimal.RequireFromString("49.25"),
		IdempotencyKey: "pay-2024-03",
	}, nil)

	w := doJSON(t, engine, http.MethodPost, "/investors/"+investorID.String()+"/payouts",
		map[string]any{"amount": "250.75", "description": "March share"},
		"Idempotency-Key", "  pay-2024-03 ")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"payable_after":"49.25"`)
}

func TestPayoutHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"duplicate request", shared.ErrDuplicateRequest, http.StatusConflict},
		{"exceeds payable", shared.NewDomainError("PAYOUT_EXCEEDS_PAYABLE", "Payout exceeds payable amount").
			WithDetails(map[string]any{"payable": "120"}), http.StatusUnprocessableEntity},
		{"non-positive amount", shared.NewDomainError("INVALID_PAYOUT_AMOUNT", "Payout amount must be positive"), http.StatusUnprocessableEntity},
		{"unknown investor", shared.NewDomainError("INVESTOR_NOT_FOUND", "Investor not found"), http.StatusNotFound},
		{"concurrent payout", shared.ErrConcurrencyConflict, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payouts, h := setupPayoutHandler(t)
			engine := newTestEngine()
			engine.POST("/investors/:id/payouts", h.Create)

			investorID := uuid.New()
			payouts.On("Payout", mock.Anything, investorID, mock.Anything).Return(nil, tt.err)

			w := doJSON(t, engine, http.MethodPost, "/investors/"+investorID.String()+"/payouts",
				map[string]any{"amount": 500})
			assert.Equal(t, tt.wantStatus, w.Code)

			var de *shared.DomainError
			require.ErrorAs(t, tt.err, &de)
			assert.Equal(t, de.Code, decode(t, w).Error.Code)
		})
	}
}

func TestPayoutHandler_Create_OversizedIdempotencyKey(t *testing.T) {
	_, h := setupPayoutHandler(t)
	engine := newTestEngine()
	engine.POST("/investors/:id/payouts", h.Create)

	key := make([]byte, 300)
	for i := range key {
		key[i] = 'k'
	}
	w := doJSON(t, engine, http.MethodPost, "/investors/"+uuid.NewString()+"/payouts",
		map[string]any{"amount": 10}, "Idempotency-Key", string(key))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayoutHandler_List(t *testing.T) {
	payouts, h := setupPayoutHandler(t)
	engine := newTestEngine()
	engine.GET("/investors/:id/payouts", h.List)

	investorID := uuid.New()
	payouts.On("ListPayouts", mock.Anything, investorID, shared.Filter{
		Page:     2,
		PageSize: 5,
		OrderBy:  "paid_at",
		OrderDir: "desc",
	}).Return([]financingapp.PayoutResponse{{ID: uuid.New(), InvestorID: investorID}}, int64(6), nil)

	w := doJSON(t, engine, http.MethodGet, "/investors/"+investorID.String()+"/payouts?page=2&page_size=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.TotalPages)
}
