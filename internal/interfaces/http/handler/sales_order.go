package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/stationery/backoffice/internal/application/billing"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	tradeapp "github.com/stationery/backoffice/internal/application/trade"
)

// SalesOrderService creates and reads resale orders
type SalesOrderService interface {
	Create(ctx context.Context, req tradeapp.CreateSalesOrderRequest) (*tradeapp.SalesOrderResponse, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*tradeapp.SalesOrderResponse, error)
	List(ctx context.Context, filter tradeapp.SalesOrderListFilter) ([]tradeapp.SalesOrderResponse, int64, error)
	AvailableInventory(ctx context.Context) ([]tradeapp.InventoryItemResponse, error)
}

// ProfitDistributionService splits a sales order's profit across investors
type ProfitDistributionService interface {
	Distribution(ctx context.Context, salesOrderID uuid.UUID) (*financingapp.OrderProfitResponse, error)
}

// SalesOrderBillLister lists the bills issued against a sales order
type SalesOrderBillLister interface {
	ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]billingapp.BillResponse, error)
}

// SalesOrderHandler handles sales order and sellable inventory endpoints
type SalesOrderHandler struct {
	BaseHandler
	orders  SalesOrderService
	profits ProfitDistributionService
	bills   SalesOrderBillLister
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orders SalesOrderService, profits ProfitDistributionService, bills SalesOrderBillLister) *SalesOrderHandler {
	return &SalesOrderHandler{
		orders:  orders,
		profits: profits,
		bills:   bills,
	}
}

// Create godoc
// @ID           createSalesOrder
// @Summary      Create a sales order
// @Description  Stock is reserved for every line
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateSalesOrderRequest true "Request body"
// @Success      201 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSalesOrderRequest
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
// @ID           listSalesOrders
// @Summary      List sales orders
// @Tags         sales-orders
// @Produce      json
// @Param        search query string false "Buyer or order number search"
// @Param        status query string false "Status" Enums(OPEN, BILLED, CANCELLED)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	var filter tradeapp.SalesOrderListFilter
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
// @ID           getSalesOrderById
// @Summary      Get sales order by ID
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{id} [get]
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
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

// ProfitDistribution godoc
// @ID           getSalesOrderProfitDistribution
// @Summary      Get sales order profit distribution
// @Description  Each contributing investor's normalized share of the order profit
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=financingapp.OrderProfitResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{id}/profit-distribution [get]
func (h *SalesOrderHandler) ProfitDistribution(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	distribution, err := h.profits.Distribution(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, distribution)
}

// Bills godoc
// @ID           listSalesOrderBills
// @Summary      List bills of a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]billingapp.BillResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{id}/bills [get]
func (h *SalesOrderHandler) Bills(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	bills, err := h.bills.ListBySalesOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bills)
}

// AvailableInventory godoc
// @ID           listAvailableInventory
// @Summary      List sellable inventory
// @Description  Items that still have stock to quote
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tradeapp.InventoryItemResponse}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory [get]
func (h *SalesOrderHandler) AvailableInventory(c *gin.Context) {
	items, err := h.orders.AvailableInventory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
