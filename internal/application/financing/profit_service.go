package financing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/financing"
)

// profitSources are the reads needed to compute one investor's profit.
// Both plain and transaction-scoped repositories satisfy it.
type profitSources struct {
	investments financing.InvestmentRepository
	payments    financing.InvestorPaymentRepository
	ledger      financing.LedgerReader
}

// load gathers every row the calculator walks for one investor
func (p profitSources) load(ctx context.Context, investorID uuid.UUID) (financing.ProfitInputs, error) {
	in := financing.ProfitInputs{}

	investments, err := p.investments.FindByInvestor(ctx, investorID)
	if err != nil {
		return in, fmt.Errorf("failed to load investments: %w", err)
	}
	in.Investments = investments

	poIDs := distinctPurchaseOrders(investments)
	lots, err := p.ledger.StockLotsByPurchaseOrders(ctx, poIDs)
	if err != nil {
		return in, fmt.Errorf("failed to load inventory items: %w", err)
	}
	in.Lots = lots

	itemIDs := make([]uuid.UUID, len(lots))
	for i, lot := range lots {
		itemIDs[i] = lot.InventoryItemID
	}
	lines, err := p.ledger.SaleLinesByInventoryItems(ctx, itemIDs)
	if err != nil {
		return in, fmt.Errorf("failed to load bill items: %w", err)
	}
	in.SaleLines = lines

	bills, err := p.ledger.BillCollections(ctx, distinctBills(lines))
	if err != nil {
		return in, fmt.Errorf("failed to load bill payments: %w", err)
	}
	in.Bills = bills

	paid, err := p.payments.SumByInvestor(ctx, investorID)
	if err != nil {
		return in, fmt.Errorf("failed to sum payouts: %w", err)
	}
	in.TotalPaid = paid
	return in, nil
}

func distinctPurchaseOrders(investments []financing.Investment) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(investments))
	ids := make([]uuid.UUID, 0, len(investments))
	for _, inv := range investments {
		if _, ok := seen[inv.PurchaseOrderID]; ok {
			continue
		}
		seen[inv.PurchaseOrderID] = struct{}{}
		ids = append(ids, inv.PurchaseOrderID)
	}
	return ids
}

func distinctBills(lines []financing.SaleLine) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.BillID]; ok {
			continue
		}
		seen[line.BillID] = struct{}{}
		ids = append(ids, line.BillID)
	}
	return ids
}

// ProfitService computes investor statements
type ProfitService struct {
	calculator   *financing.ProfitCalculator
	investorRepo financing.InvestorRepository
	sources      profitSources
}

// NewProfitService creates a new ProfitService
func NewProfitService(
	calculator *financing.ProfitCalculator,
	investorRepo financing.InvestorRepository,
	investmentRepo financing.InvestmentRepository,
	paymentRepo financing.InvestorPaymentRepository,
	ledger financing.LedgerReader,
) *ProfitService {
	return &ProfitService{
		calculator:   calculator,
		investorRepo: investorRepo,
		sources: profitSources{
			investments: investmentRepo,
			payments:    paymentRepo,
			ledger:      ledger,
		},
	}
}

// Calculator returns the configured calculator
func (s *ProfitService) Calculator() *financing.ProfitCalculator {
	return s.calculator
}

// Profit computes the raw profit figures for one investor
func (s *ProfitService) Profit(ctx context.Context, investorID uuid.UUID) (*financing.InvestorProfit, error) {
	return s.compute(ctx, s.sources, investorID)
}

// Statement returns an investor together with their profit and due figures
func (s *ProfitService) Statement(ctx context.Context, investorID uuid.UUID) (*StatementResponse, error) {
	investor, err := s.investorRepo.FindByID(ctx, investorID)
	if err != nil {
		return nil, err
	}
	profit, err := s.compute(ctx, s.sources, investorID)
	if err != nil {
		return nil, err
	}
	resp := ToStatementResponse(investor, profit, s.calculator.Attribution())
	return &resp, nil
}

// ProfitInTx computes profit using repositories bound to the caller's transaction
func (s *ProfitService) ProfitInTx(ctx context.Context, repos TransactionalRepositories, investorID uuid.UUID) (*financing.InvestorProfit, error) {
	return s.compute(ctx, profitSources{
		investments: repos.InvestmentRepo(),
		payments:    repos.InvestorPaymentRepo(),
		ledger:      repos.LedgerReader(),
	}, investorID)
}

func (s *ProfitService) compute(ctx context.Context, src profitSources, investorID uuid.UUID) (*financing.InvestorProfit, error) {
	in, err := src.load(ctx, investorID)
	if err != nil {
		return nil, err
	}
	return s.calculator.Calculate(investorID, in), nil
}
