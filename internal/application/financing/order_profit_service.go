package financing

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/trade"
)

// OrderProfitService distributes a sales order's profit across the investors
// of the purchase orders that supplied its goods
type OrderProfitService struct {
	salesOrderRepo trade.SalesOrderRepository
	investorRepo   financing.InvestorRepository
	investmentRepo financing.InvestmentRepository
	ledger         financing.LedgerReader
}

// NewOrderProfitService creates a new OrderProfitService
func NewOrderProfitService(
	salesOrderRepo trade.SalesOrderRepository,
	investorRepo financing.InvestorRepository,
	investmentRepo financing.InvestmentRepository,
	ledger financing.LedgerReader,
) *OrderProfitService {
	return &OrderProfitService{
		salesOrderRepo: salesOrderRepo,
		investorRepo:   investorRepo,
		investmentRepo: investmentRepo,
		ledger:         ledger,
	}
}

// Distribution computes the per-investor profit split of one sales order
func (s *OrderProfitService) Distribution(ctx context.Context, salesOrderID uuid.UUID) (*OrderProfitResponse, error) {
	if _, err := s.salesOrderRepo.FindByID(ctx, salesOrderID); err != nil {
		return nil, err
	}

	lines, err := s.ledger.OrderCostLines(ctx, salesOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order cost lines: %w", err)
	}
	billTotals, err := s.ledger.OrderBillTotals(ctx, salesOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order bills: %w", err)
	}

	poIDs := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.PurchaseOrderID]; ok {
			continue
		}
		seen[line.PurchaseOrderID] = struct{}{}
		poIDs = append(poIDs, line.PurchaseOrderID)
	}
	investments, err := s.investmentRepo.FindByPurchaseOrders(ctx, poIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}

	investorIDs := make([]uuid.UUID, 0, len(investments))
	for _, inv := range investments {
		if !slices.Contains(investorIDs, inv.InvestorID) {
			investorIDs = append(investorIDs, inv.InvestorID)
		}
	}
	investors, err := s.investorRepo.FindByIDs(ctx, investorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load investors: %w", err)
	}
	refs := make(map[uuid.UUID]financing.InvestorRef, len(investors))
	for _, inv := range investors {
		refs[inv.ID] = financing.InvestorRef{ID: inv.ID, Name: inv.Name, IsHouse: inv.IsHouse}
	}

	dist := financing.AggregateOrderProfit(financing.OrderProfitInputs{
		OrderID:     salesOrderID,
		BillTotals:  billTotals,
		Lines:       lines,
		Investments: investments,
		Investors:   refs,
	})
	resp := ToOrderProfitResponse(dist)
	return &resp, nil
}
