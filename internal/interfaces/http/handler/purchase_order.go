package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	tradeapp "github.com/stationery/backoffice/internal/application/trade"
)

// PurchaseOrderService runs the vendor purchase order lifecycle
type PurchaseOrderService interface {
	Create(ctx context.Context, req tradeapp.CreatePurchaseOrderRequest) (*tradeapp.PurchaseOrderWriteResponse, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*tradeapp.PurchaseOrderResponse, error)
	List(ctx context.Context, filter tradeapp.PurchaseOrderListFilter) ([]tradeapp.PurchaseOrderResponse, int64, error)
	Update(ctx context.Context, orderID uuid.UUID, req tradeapp.UpdatePurchaseOrderRequest) (*tradeapp.PurchaseOrderWriteResponse, error)
	Approve(ctx context.Context, orderID uuid.UUID) (*tradeapp.PurchaseOrderResponse, error)
	MarkOrdered(ctx context.Context, orderID uuid.UUID) (*tradeapp.PurchaseOrderResponse, error)
	Cancel(ctx context.Context, orderID uuid.UUID, req tradeapp.CancelPurchaseOrderRequest) (*tradeapp.PurchaseOrderResponse, error)
	Receive(ctx context.Context, orderID uuid.UUID) (*tradeapp.ReceiveResponse, error)
	Inventory(ctx context.Context, orderID uuid.UUID) ([]tradeapp.InventoryItemResponse, error)
	AddPayment(ctx context.Context, orderID uuid.UUID, req tradeapp.VendorPaymentRequest) (*tradeapp.VendorPaymentResultResponse, error)
	EditPayment(ctx context.Context, orderID, paymentID uuid.UUID, req tradeapp.VendorPaymentRequest) (*tradeapp.VendorPaymentResultResponse, error)
	DeletePayment(ctx context.Context, orderID, paymentID uuid.UUID) (*tradeapp.VendorPaymentResultResponse, error)
}

// InvestmentLister lists the investments funding a purchase order
type InvestmentLister interface {
	Investments(ctx context.Context, purchaseOrderID uuid.UUID) ([]financingapp.InvestmentResponse, error)
}

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orders      PurchaseOrderService
	investments InvestmentLister
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orders PurchaseOrderService, investments InvestmentLister) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		orders:      orders,
		investments: investments,
	}
}

// Create godoc
// @ID           createPurchaseOrder
// @Summary      Create a purchase order
// @Description  The investment proposal is allocated in the same transaction
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreatePurchaseOrderRequest true "Request body"
// @Success      201 {object} dto.Response{data=tradeapp.PurchaseOrderWriteResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List godoc
// @ID           listPurchaseOrders
// @Summary      List purchase orders
// @Tags         purchase-orders
// @Produce      json
// @Param        status query string false "Status" Enums(PENDING, APPROVED, ORDERED, RECEIVED, CANCELLED)
// @Param        search query string false "Vendor or order number search"
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]tradeapp.PurchaseOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter tradeapp.PurchaseOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)

	orders, total, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getPurchaseOrderById
// @Summary      Get purchase order by ID
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.PurchaseOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Update godoc
// @ID           updatePurchaseOrder
// @Summary      Update a purchase order
// @Description  Items and investments are replaced; the allocation is re-run against the new total
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Param        request body tradeapp.UpdatePurchaseOrderRequest true "Request body"
// @Success      200 {object} dto.Response{data=tradeapp.PurchaseOrderWriteResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Approve godoc
// @ID           approvePurchaseOrder
// @Summary      Approve a purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.PurchaseOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/approve [post]
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	h.transition(c, h.orders.Approve)
}

// MarkOrdered godoc
// @ID           markPurchaseOrderOrdered
// @Summary      Mark a purchase order as ordered
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.PurchaseOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/order [post]
func (h *PurchaseOrderHandler) MarkOrdered(c *gin.Context) {
	h.transition(c, h.orders.MarkOrdered)
}

func (h *PurchaseOrderHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*tradeapp.PurchaseOrderResponse, error)) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	order, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel godoc
// @ID           cancelPurchaseOrder
// @Summary      Cancel a purchase order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Param        request body tradeapp.CancelPurchaseOrderRequest true "Request body"
// @Success      200 {object} dto.Response{data=tradeapp.PurchaseOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.CancelPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Receive godoc
// @ID           receivePurchaseOrder
// @Summary      Receive a purchase order
// @Description  Creates one inventory item per line item
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.ReceiveResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	result, err := h.orders.Receive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Investments godoc
// @ID           listPurchaseOrderInvestments
// @Summary      List purchase order investments
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]financingapp.InvestmentResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/investments [get]
func (h *PurchaseOrderHandler) Investments(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	investments, err := h.investments.Investments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, investments)
}

// Inventory godoc
// @ID           listPurchaseOrderInventory
// @Summary      List inventory received for a purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]tradeapp.InventoryItemResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/inventory [get]
func (h *PurchaseOrderHandler) Inventory(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	items, err := h.orders.Inventory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// AddPayment godoc
// @ID           addPurchaseOrderPayment
// @Summary      Record a vendor payment
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Param        request body tradeapp.VendorPaymentRequest true "Request body"
// @Success      201 {object} dto.Response{data=tradeapp.VendorPaymentResultResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/payments [post]
func (h *PurchaseOrderHandler) AddPayment(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.VendorPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.orders.AddPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// EditPayment godoc
// @ID           editPurchaseOrderPayment
// @Summary      Edit a vendor payment
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Param        paymentId path string true "Payment ID" format(uuid)
// @Param        request body tradeapp.VendorPaymentRequest true "Request body"
// @Success      200 {object} dto.Response{data=tradeapp.VendorPaymentResultResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/payments/{paymentId} [put]
func (h *PurchaseOrderHandler) EditPayment(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	paymentID, ok := h.pathUUID(c, "paymentId")
	if !ok {
		return
	}
	var req tradeapp.VendorPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.orders.EditPayment(c.Request.Context(), id, paymentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeletePayment godoc
// @ID           deletePurchaseOrderPayment
// @Summary      Delete a vendor payment
// @Description  The payment is reversed and the new balance returned
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Param        paymentId path string true "Payment ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.VendorPaymentResultResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/payments/{paymentId} [delete]
func (h *PurchaseOrderHandler) DeletePayment(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	paymentID, ok := h.pathUUID(c, "paymentId")
	if !ok {
		return
	}

	result, err := h.orders.DeletePayment(c.Request.Context(), id, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
