package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/interfaces/http/middleware"
)

// PayoutService pays investors out of their collected profit
type PayoutService interface {
	Payout(ctx context.Context, investorID uuid.UUID, req financingapp.PayoutRequest) (*financingapp.PayoutResponse, error)
	ListPayouts(ctx context.Context, investorID uuid.UUID, filter shared.Filter) ([]financingapp.PayoutResponse, int64, error)
}

// PageQuery carries pagination query parameters
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PayoutHandler serves investor payouts
type PayoutHandler struct {
	BaseHandler
	payouts PayoutService
}

// NewPayoutHandler creates a new PayoutHandler
func NewPayoutHandler(payouts PayoutService) *PayoutHandler {
	return &PayoutHandler{payouts: payouts}
}

// Create godoc
// @ID           createInvestorPayout
// @Summary      Pay an investor
// @Description  The amount must not exceed the investor's payable amount. A repeated Idempotency-Key fails with DUPLICATE_REQUEST
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Param        Idempotency-Key header string false "Idempotency key"
// @Param        request body financingapp.PayoutRequest true "Request body"
// @Success      201 {object} dto.Response{data=financingapp.PayoutResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      429 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors/{id}/payouts [post]
func (h *PayoutHandler) Create(c *gin.Context) {
	investorID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req financingapp.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.IdempotencyKey = strings.TrimSpace(c.GetHeader(middleware.IdempotencyKeyHeader))

	payout, err := h.payouts.Payout(c.Request.Context(), investorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payout)
}

// List godoc
// @ID           listInvestorPayouts
// @Summary      List investor payouts
// @Description  Newest first
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]financingapp.PayoutResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors/{id}/payouts [get]
func (h *PayoutHandler) List(c *gin.Context) {
	investorID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var query PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}
	page, pageSize := normalizePage(query.Page, query.PageSize)

	filter := shared.Filter{Page: page, PageSize: pageSize, OrderBy: "paid_at", OrderDir: "desc"}
	payouts, total, err := h.payouts.ListPayouts(c.Request.Context(), investorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, payouts, total, page, pageSize)
}
