package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/stationery/backoffice/internal/application/billing"
)

// BillService issues bills and records buyer payments
type BillService interface {
	Issue(ctx context.Context, req billingapp.IssueBillRequest) (*billingapp.BillResponse, error)
	GetByID(ctx context.Context, billID uuid.UUID) (*billingapp.BillResponse, error)
	RecordPayment(ctx context.Context, billID uuid.UUID, req billingapp.RecordBillPaymentRequest) (*billingapp.RecordBillPaymentResponse, error)
}

// BillHandler handles bill endpoints
type BillHandler struct {
	BaseHandler
	bills BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(bills BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

// Issue godoc
// @ID           issueBill
// @Summary      Issue a bill
// @Description  Bill items are copied from the sales order lines
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body billingapp.IssueBillRequest true "Request body"
// @Success      201 {object} dto.Response{data=billingapp.BillResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills [post]
func (h *BillHandler) Issue(c *gin.Context) {
	var req billingapp.IssueBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	bill, err := h.bills.Issue(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bill)
}

// GetByID godoc
// @ID           getBillById
// @Summary      Get bill by ID
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.BillResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/{id} [get]
func (h *BillHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	bill, err := h.bills.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// RecordPayment godoc
// @ID           recordBillPayment
// @Summary      Record a buyer payment
// @Description  The amount must not exceed the outstanding balance
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Param        request body billingapp.RecordBillPaymentRequest true "Request body"
// @Success      201 {object} dto.Response{data=billingapp.RecordBillPaymentResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/{id}/payments [post]
func (h *BillHandler) RecordPayment(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req billingapp.RecordBillPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.bills.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
