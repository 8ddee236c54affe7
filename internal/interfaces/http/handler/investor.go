package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
)

// InvestorService manages investor records
type InvestorService interface {
	Create(ctx context.Context, req financingapp.CreateInvestorRequest) (*financingapp.InvestorResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*financingapp.InvestorResponse, error)
	List(ctx context.Context, filter financingapp.InvestorListFilter) ([]financingapp.InvestorResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req financingapp.UpdateInvestorRequest) (*financingapp.InvestorResponse, error)
	Activate(ctx context.Context, id uuid.UUID) (*financingapp.InvestorResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*financingapp.InvestorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatementService computes an investor's profit statement
type StatementService interface {
	Statement(ctx context.Context, investorID uuid.UUID) (*financingapp.StatementResponse, error)
}

// StatisticsService computes the portfolio-wide investor statistics
type StatisticsService interface {
	Statistics(ctx context.Context) (*financingapp.StatisticsResponse, error)
}

// InvestorHandler serves investor records, statements and statistics
type InvestorHandler struct {
	BaseHandler
	investors  InvestorService
	statements StatementService
	statistics StatisticsService
}

// NewInvestorHandler creates a new InvestorHandler
func NewInvestorHandler(investors InvestorService, statements StatementService, statistics StatisticsService) *InvestorHandler {
	return &InvestorHandler{
		investors:  investors,
		statements: statements,
		statistics: statistics,
	}
}

// Create godoc
// @ID           createInvestor
// @Summary      Create an investor
// @Description  Names are NFC-normalized and whitespace-collapsed
// @Tags         investors
// @Accept       json
// @Produce      json
// @Param        request body financingapp.CreateInvestorRequest true "Request body"
// @Success      201 {object} dto.Response{data=financingapp.InvestorResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors [post]
func (h *InvestorHandler) Create(c *gin.Context) {
	var req financingapp.CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	investor, err := h.investors.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, investor)
}

// List godoc
// @ID           listInvestors
// @Summary      List investors
// @Description  Filter by active flag and search by name
// @Tags         investors
// @Produce      json
// @Param        active query bool false "Active flag"
// @Param        search query string false "Name search"
// @Param        include_house query bool false "Include the house investor"
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]financingapp.InvestorResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors [get]
func (h *InvestorHandler) List(c *gin.Context) {
	var filter financingapp.InvestorListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)

	investors, total, err := h.investors.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, investors, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getInvestorById
// @Summary      Get investor by ID
// @Tags         investors
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Success      200 {object} dto.Response{data=financingapp.InvestorResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors/{id} [get]
func (h *InvestorHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	investor, err := h.investors.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, investor)
}

// Update godoc
// @ID           updateInvestor
// @Summary      Update investor contact and bank details
// @Tags         investors
// @Accept       json
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Param        request body financingapp.UpdateInvestorRequest true "Request body"
// @Success      200 {object} dto.Response{data=financingapp.InvestorResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors/{id} [put]
func (h *InvestorHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req financingapp.UpdateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	investor, err := h.investors.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, investor)
}

// Activate godoc
// @ID           activateInvestor
// @Summary      Activate an investor
// @Tags         investors
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Success      200 {object} dto.Response{data=financingapp.InvestorResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors/{id}/activate [post]
func (h *InvestorHandler) Activate(c *gin.Context) {
	h.toggle(c, h.investors.Activate)
}

// Deactivate godoc
// @ID           deactivateInvestor
// @Summary      Deactivate an investor
// @Description  The house investor cannot be deactivated
// @Tags         investors
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Success      200 {object} dto.Response{data=financingapp.InvestorResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors/{id}/deactivate [post]
func (h *InvestorHandler) Deactivate(c *gin.Context) {
	h.toggle(c, h.investors.Deactivate)
}

func (h *InvestorHandler) toggle(c *gin.Context, apply func(context.Context, uuid.UUID) (*financingapp.InvestorResponse, error)) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	investor, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, investor)
}

// Delete godoc
// @ID           deleteInvestor
// @Summary      Delete an investor
// @Description  Investors with investments cannot be deleted; deactivate them instead
// @Tags         investors
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors/{id} [delete]
func (h *InvestorHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.investors.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Statement godoc
// @ID           getInvestorStatement
// @Summary      Get investor profit statement
// @Description  Profit earned, paid, due and payable now, with a per purchase order breakdown
// @Tags         investors
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Success      200 {object} dto.Response{data=financingapp.StatementResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors/{id}/statement [get]
func (h *InvestorHandler) Statement(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	statement, err := h.statements.Statement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}

// Statistics godoc
// @ID           getInvestorStatistics
// @Summary      Get investor statistics
// @Description  Totals, investor counts, equity distribution and ROI
// @Tags         investors
// @Produce      json
// @Success      200 {object} dto.Response{data=financingapp.StatisticsResponse}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /investors/statistics [get]
func (h *InvestorHandler) Statistics(c *gin.Context) {
	stats, err := h.statistics.Statistics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
