package financing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/financing"
)

// ==================== Investor DTOs ====================

// ContactInput carries optional contact details
type ContactInput struct {
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

// BankInput carries optional bank details
type BankInput struct {
	BankName      string `json:"bank_name" binding:"omitempty,max=200"`
	AccountName   string `json:"account_name" binding:"omitempty,max=200"`
	AccountNumber string `json:"account_number" binding:"omitempty,max=100"`
	Branch        string `json:"branch" binding:"omitempty,max=200"`
}

// CreateInvestorRequest represents a request to create an investor
type CreateInvestorRequest struct {
	Name    string       `json:"name" binding:"required,min=1,max=200"`
	Contact ContactInput `json:"contact"`
	Bank    BankInput    `json:"bank"`
	Notes   string       `json:"notes"`
}

// UpdateInvestorRequest represents a partial investor update
type UpdateInvestorRequest struct {
	Name    *string       `json:"name" binding:"omitempty,min=1,max=200"`
	Contact *ContactInput `json:"contact"`
	Bank    *BankInput    `json:"bank"`
	Notes   *string       `json:"notes"`
}

// InvestorListFilter narrows an investor listing
type InvestorListFilter struct {
	Search       string `form:"search"`
	Active       *bool  `form:"active"`
	IncludeHouse bool   `form:"include_house"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// InvestorResponse is the API view of an investor
type InvestorResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Contact   ContactInput `json:"contact"`
	Bank      BankInput    `json:"bank"`
	Notes     string       `json:"notes,omitempty"`
	IsActive  bool         `json:"is_active"`
	IsHouse   bool         `json:"is_house"`
	Version   int          `json:"version"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ToInvestorResponse converts a domain investor to its API view
func ToInvestorResponse(i *financing.Investor) InvestorResponse {
	return InvestorResponse{
		ID:   i.ID,
		Name: i.Name,
		Contact: ContactInput{
			Phone:   i.Contact.Phone,
			Email:   i.Contact.Email,
			Address: i.Contact.Address,
		},
		Bank: BankInput{
			BankName:      i.Bank.BankName,
			AccountName:   i.Bank.AccountName,
			AccountNumber: i.Bank.AccountNumber,
			Branch:        i.Bank.Branch,
		},
		Notes:     i.Notes,
		IsActive:  i.IsActive,
		IsHouse:   i.IsHouse,
		Version:   i.Version,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ==================== Investment DTOs ====================

// InvestmentInput is one proposed contribution to a purchase order
type InvestmentInput struct {
	InvestorID       uuid.UUID       `json:"investor_id" binding:"required"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	IsFullInvestment bool            `json:"is_full_investment"`
}

// ToProposals converts request inputs to allocator proposals
func ToProposals(inputs []InvestmentInput) []financing.Proposal {
	proposals := make([]financing.Proposal, len(inputs))
	for i, in := range inputs {
		proposals[i] = financing.Proposal{
			InvestorID:       in.InvestorID,
			InvestmentAmount: in.InvestmentAmount,
			ProfitPercentage: in.ProfitPercentage,
			IsFullInvestment: in.IsFullInvestment,
		}
	}
	return proposals
}

// InvestmentResponse is the API view of one investment row
type InvestmentResponse struct {
	ID               uuid.UUID       `json:"id"`
	InvestorID       uuid.UUID       `json:"investor_id"`
	InvestorName     string          `json:"investor_name,omitempty"`
	IsHouse          bool            `json:"is_house"`
	PurchaseOrderID  uuid.UUID       `json:"purchase_order_id"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	IsFullInvestment bool            `json:"is_full_investment"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToInvestmentResponse converts a domain investment to its API view
func ToInvestmentResponse(inv *financing.Investment, investor *financing.Investor) InvestmentResponse {
	resp := InvestmentResponse{
		ID:               inv.ID,
		InvestorID:       inv.InvestorID,
		PurchaseOrderID:  inv.PurchaseOrderID,
		InvestmentAmount: inv.InvestmentAmount,
		ProfitPercentage: inv.ProfitPercentage.Decimal(),
		IsFullInvestment: inv.IsFullInvestment,
		CreatedAt:        inv.CreatedAt,
	}
	if investor != nil {
		resp.InvestorName = investor.Name
		resp.IsHouse = investor.IsHouse
	}
	return resp
}

// AllocationResponse summarizes a finalized investment set
type AllocationResponse struct {
	PurchaseOrderID uuid.UUID            `json:"purchase_order_id"`
	TargetAmount    decimal.Decimal      `json:"target_amount"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	TotalPercentage decimal.Decimal      `json:"total_percentage"`
	HouseFilled     bool                 `json:"house_filled"`
	Investments     []InvestmentResponse `json:"investments"`
}

// ToAllocationResponse converts an allocation to its API view
func ToAllocationResponse(alloc *financing.Allocation) AllocationResponse {
	resp := AllocationResponse{
		PurchaseOrderID: alloc.PurchaseOrderID,
		TargetAmount:    alloc.TargetAmount,
		TotalAmount:     alloc.TotalAmount(),
		TotalPercentage: alloc.TotalPercentage(),
		HouseFilled:     alloc.House != nil,
		Investments:     make([]InvestmentResponse, len(alloc.Investments)),
	}
	for i := range alloc.Investments {
		resp.Investments[i] = ToInvestmentResponse(&alloc.Investments[i], nil)
		if alloc.House != nil && alloc.Investments[i].ID == alloc.House.ID {
			resp.Investments[i].IsHouse = true
		}
	}
	return resp
}

// ==================== Statement DTOs ====================

// PurchaseOrderProfitResponse is one purchase order line of a statement
type PurchaseOrderProfitResponse struct {
	InvestmentID     uuid.UUID       `json:"investment_id"`
	PurchaseOrderID  uuid.UUID       `json:"purchase_order_id"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	Revenue          decimal.Decimal `json:"revenue"`
	Collected        decimal.Decimal `json:"collected"`
	ProfitEarned     decimal.Decimal `json:"profit_earned"`
	PayableNow       decimal.Decimal `json:"payable_now"`
}

// StatementResponse is an investor's profit and due statement
type StatementResponse struct {
	Investor          InvestorResponse              `json:"investor"`
	TotalInvested     decimal.Decimal               `json:"total_invested"`
	TotalProfitEarned decimal.Decimal               `json:"total_profit_earned"`
	TotalPaid         decimal.Decimal               `json:"total_paid"`
	TotalDue          decimal.Decimal               `json:"total_due"`
	PayableNowRaw     decimal.Decimal               `json:"payable_now_raw"`
	PayableNow        decimal.Decimal               `json:"payable_now"`
	Attribution       string                        `json:"collection_attribution"`
	PurchaseOrders    []PurchaseOrderProfitResponse `json:"purchase_orders"`
}

// ToStatementResponse converts a computed profit to a statement
func ToStatementResponse(investor *financing.Investor, profit *financing.InvestorProfit, attribution financing.CollectionAttribution) StatementResponse {
	resp := StatementResponse{
		Investor:          ToInvestorResponse(investor),
		TotalInvested:     profit.TotalInvested,
		TotalProfitEarned: profit.TotalProfitEarned.Round(2),
		TotalPaid:         profit.TotalPaid,
		TotalDue:          profit.TotalDue.Round(2),
		PayableNowRaw:     profit.PayableNowRaw.Round(2),
		PayableNow:        profit.PayableNow,
		Attribution:       string(attribution),
		PurchaseOrders:    make([]PurchaseOrderProfitResponse, len(profit.Orders)),
	}
	for i, o := range profit.Orders {
		resp.PurchaseOrders[i] = PurchaseOrderProfitResponse{
			InvestmentID:     o.InvestmentID,
			PurchaseOrderID:  o.PurchaseOrderID,
			InvestmentAmount: o.InvestmentAmount,
			ProfitPercentage: o.ProfitPercentage,
			Revenue:          o.Revenue,
			Collected:        o.Collected,
			ProfitEarned:     o.ProfitEarned.Round(2),
			PayableNow:       o.PayableNow.Round(2),
		}
	}
	return resp
}

// ==================== Payout DTOs ====================

// PayoutRequest asks to pay an investor out of collected profit
type PayoutRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description" binding:"omitempty,max=500"`
	IdempotencyKey string          `json:"-"`
}

// PayoutResponse is the API view of a committed payout
type PayoutResponse struct {
	ID             uuid.UUID       `json:"id"`
	InvestorID     uuid.UUID       `json:"investor_id"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description,omitempty"`
	PaidAt         time.Time       `json:"paid_at"`
	PayableBefore  decimal.Decimal `json:"payable_before,omitzero"`
	PayableAfter   decimal.Decimal `json:"payable_after,omitzero"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// ToPayoutResponse converts a domain payout to its API view
func ToPayoutResponse(p *financing.InvestorPayment) PayoutResponse {
	return PayoutResponse{
		ID:             p.ID,
		InvestorID:     p.InvestorID,
		Amount:         p.Amount,
		Description:    p.Description,
		PaidAt:         p.PaidAt,
		IdempotencyKey: p.IdempotencyKey,
	}
}

// ==================== Order profit DTOs ====================

// InvestorOrderShareResponse is one investor's slice of a sales order's profit
type InvestorOrderShareResponse struct {
	InvestorID         uuid.UUID       `json:"investor_id"`
	InvestorName       string          `json:"investor_name"`
	IsHouse            bool            `json:"is_house"`
	PurchaseOrderIDs   []uuid.UUID     `json:"purchase_order_ids"`
	InvestorPercentage decimal.Decimal `json:"investor_percentage"`
	NormalizedShare    decimal.Decimal `json:"normalized_share"`
	CalculatedProfit   decimal.Decimal `json:"calculated_profit"`
	DistributedToDate  decimal.Decimal `json:"distributed_to_date"`
}

// OrderProfitResponse is the profit distribution of one sales order
type OrderProfitResponse struct {
	SalesOrderID              uuid.UUID                    `json:"sales_order_id"`
	PurchaseOrderIDs          []uuid.UUID                  `json:"purchase_order_ids"`
	TotalSales                decimal.Decimal              `json:"total_sales"`
	TotalCost                 decimal.Decimal              `json:"total_cost"`
	TotalProfit               decimal.Decimal              `json:"total_profit"`
	TotalInvestmentPercentage decimal.Decimal              `json:"total_investment_percentage"`
	Normalized                bool                         `json:"normalized"`
	Investors                 []InvestorOrderShareResponse `json:"investors"`
}

// ToOrderProfitResponse converts a distribution to its API view
func ToOrderProfitResponse(d *financing.OrderProfitDistribution) OrderProfitResponse {
	resp := OrderProfitResponse{
		SalesOrderID:              d.OrderID,
		PurchaseOrderIDs:          d.PurchaseOrderIDs,
		TotalSales:                d.TotalSales,
		TotalCost:                 d.TotalCost,
		TotalProfit:               d.TotalProfit,
		TotalInvestmentPercentage: d.TotalInvestmentPercentage,
		Normalized:                d.Normalized,
		Investors:                 make([]InvestorOrderShareResponse, len(d.Shares)),
	}
	for i, s := range d.Shares {
		resp.Investors[i] = InvestorOrderShareResponse{
			InvestorID:         s.InvestorID,
			InvestorName:       s.InvestorName,
			IsHouse:            s.IsHouse,
			PurchaseOrderIDs:   s.PurchaseOrderIDs,
			InvestorPercentage: s.InvestorPercentage,
			NormalizedShare:    s.NormalizedShare,
			CalculatedProfit:   s.CalculatedProfit,
			DistributedToDate:  s.DistributedToDate,
		}
	}
	return resp
}

// ==================== Statistics DTOs ====================

// EquityShareResponse is one investor's share of all money invested
type EquityShareResponse struct {
	InvestorID        uuid.UUID       `json:"investor_id"`
	InvestorName      string          `json:"investor_name"`
	IsHouse           bool            `json:"is_house"`
	IsActive          bool            `json:"is_active"`
	TotalInvested     decimal.Decimal `json:"total_invested"`
	SharePercentage   decimal.Decimal `json:"share_percentage"`
	TotalProfitEarned decimal.Decimal `json:"total_profit_earned"`
	ROI               decimal.Decimal `json:"roi"`
}

// StatisticsResponse is the investor statistics roll-up
type StatisticsResponse struct {
	TotalInvestors    int                   `json:"total_investors"`
	ActiveInvestors   int                   `json:"active_investors"`
	InactiveInvestors int                   `json:"inactive_investors"`
	TotalInvested     decimal.Decimal       `json:"total_invested"`
	TotalProfitEarned decimal.Decimal       `json:"total_profit_earned"`
	TotalPaid         decimal.Decimal       `json:"total_paid"`
	TotalDue          decimal.Decimal       `json:"total_due"`
	TotalPayableNow   decimal.Decimal       `json:"total_payable_now"`
	OverallROI        decimal.Decimal       `json:"overall_roi"`
	Equity            []EquityShareResponse `json:"equity_distribution"`
}

// ToStatisticsResponse converts statistics to their API view
func ToStatisticsResponse(s *financing.InvestorStatistics) StatisticsResponse {
	resp := StatisticsResponse{
		TotalInvestors:    s.TotalInvestors,
		ActiveInvestors:   s.ActiveInvestors,
		InactiveInvestors: s.InactiveInvestors,
		TotalInvested:     s.TotalInvested,
		TotalProfitEarned: s.TotalProfitEarned,
		TotalPaid:         s.TotalPaid,
		TotalDue:          s.TotalDue,
		TotalPayableNow:   s.TotalPayableNow,
		OverallROI:        s.OverallROI,
		Equity:            make([]EquityShareResponse, len(s.Equity)),
	}
	for i, e := range s.Equity {
		resp.Equity[i] = EquityShareResponse{
			InvestorID:        e.InvestorID,
			InvestorName:      e.InvestorName,
			IsHouse:           e.IsHouse,
			IsActive:          e.IsActive,
			TotalInvested:     e.TotalInvested,
			SharePercentage:   e.SharePercentage,
			TotalProfitEarned: e.TotalProfitEarned,
			ROI:               e.ROI,
		}
	}
	return resp
}
