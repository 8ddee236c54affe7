package financing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/financing"
)

// StatisticsService rolls every investor statement up into portfolio statistics
type StatisticsService struct {
	calculator     *financing.ProfitCalculator
	investorRepo   financing.InvestorRepository
	investmentRepo financing.InvestmentRepository
	paymentRepo    financing.InvestorPaymentRepository
	ledger         financing.LedgerReader
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(
	calculator *financing.ProfitCalculator,
	investorRepo financing.InvestorRepository,
	investmentRepo financing.InvestmentRepository,
	paymentRepo financing.InvestorPaymentRepository,
	ledger financing.LedgerReader,
) *StatisticsService {
	return &StatisticsService{
		calculator:     calculator,
		investorRepo:   investorRepo,
		investmentRepo: investmentRepo,
		paymentRepo:    paymentRepo,
		ledger:         ledger,
	}
}

// Statistics computes the statistics view
func (s *StatisticsService) Statistics(ctx context.Context) (*StatisticsResponse, error) {
	summaries, err := s.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToStatisticsResponse(financing.BuildStatistics(summaries))
	return &resp, nil
}

// Summaries computes every investor's statement, house included, from one pass over the ledger
func (s *StatisticsService) Summaries(ctx context.Context) ([]financing.InvestorSummary, error) {
	investors, err := s.investorRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list investors: %w", err)
	}
	investments, err := s.investmentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}
	paid, err := s.paymentRepo.SumAllByInvestor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payouts: %w", err)
	}

	in := financing.ProfitInputs{Investments: investments}
	in.Lots, err = s.ledger.StockLotsByPurchaseOrders(ctx, distinctPurchaseOrders(investments))
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory items: %w", err)
	}
	itemIDs := make([]uuid.UUID, len(in.Lots))
	for i, lot := range in.Lots {
		itemIDs[i] = lot.InventoryItemID
	}
	in.SaleLines, err = s.ledger.SaleLinesByInventoryItems(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load bill items: %w", err)
	}
	in.Bills, err = s.ledger.BillCollections(ctx, distinctBills(in.SaleLines))
	if err != nil {
		return nil, fmt.Errorf("failed to load bill payments: %w", err)
	}

	summaries := make([]financing.InvestorSummary, len(investors))
	for i, investor := range investors {
		perInvestor := in
		perInvestor.TotalPaid = paid[investor.ID]
		summaries[i] = financing.InvestorSummary{
			Investor: investor,
			Profit:   s.calculator.Calculate(investor.ID, perInvestor),
		}
	}
	return summaries, nil
}
