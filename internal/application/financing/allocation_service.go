package financing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AllocationService finalizes purchase order investment sets
type AllocationService struct {
	allocator      *financing.Allocator
	investorRepo   financing.InvestorRepository
	investmentRepo financing.InvestmentRepository
	orderRepo      trade.PurchaseOrderRepository
	logger         *zap.Logger
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(
	allocator *financing.Allocator,
	investorRepo financing.InvestorRepository,
	investmentRepo financing.InvestmentRepository,
	orderRepo trade.PurchaseOrderRepository,
	logger *zap.Logger,
) *AllocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{
		allocator:      allocator,
		investorRepo:   investorRepo,
		investmentRepo: investmentRepo,
		orderRepo:      orderRepo,
		logger:         logger,
	}
}

// HouseInvestorID returns the reserved house investor id
func (s *AllocationService) HouseInvestorID() uuid.UUID {
	return s.allocator.HouseInvestorID()
}

// AllocateInTx replaces the investment set of order with the allocation of proposals.
// It must run inside the transaction that persists the order, with the order row
// already locked or freshly inserted, so the set and the order total stay consistent.
func (s *AllocationService) AllocateInTx(ctx context.Context, repos TransactionalRepositories, order *trade.PurchaseOrder, proposals []financing.Proposal) (*financing.Allocation, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "allocation", "allocate",
		telemetry.WithAttribute("purchase_order_id", order.ID.String()),
		telemetry.WithAttribute("proposal_count", len(proposals)),
	)
	defer span.End()

	if err := s.checkInvestors(ctx, repos.InvestorRepo(), proposals); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	alloc, err := s.allocator.Allocate(order.ID, order.TotalAmount, proposals)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := alloc.Verify(s.allocator.Epsilon()); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("allocator produced an unbalanced set: %w", err)
	}

	if alloc.House != nil {
		if err := repos.InvestorRepo().EnsureHouse(ctx, s.allocator.HouseInvestorID()); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to ensure house investor: %w", err)
		}
	}

	if err := repos.InvestmentRepo().ReplaceForPurchaseOrder(ctx, order.ID, alloc.Investments); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to replace investments: %w", err)
	}

	fields := []zap.Field{
		zap.String("purchase_order_id", order.ID.String()),
		zap.String("target_amount", alloc.TargetAmount.StringFixed(2)),
		zap.Int("investment_count", len(alloc.Investments)),
	}
	if alloc.House != nil {
		fields = append(fields,
			zap.String("house_amount", alloc.House.InvestmentAmount.StringFixed(2)),
			zap.String("house_percentage", alloc.House.ProfitPercentage.Decimal().StringFixed(2)),
		)
	}
	s.logger.Info("investments allocated", fields...)
	telemetry.SetOK(span)
	return alloc, nil
}

// checkInvestors rejects proposals naming unknown or inactive investors
func (s *AllocationService) checkInvestors(ctx context.Context, repo financing.InvestorRepository, proposals []financing.Proposal) error {
	if len(proposals) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(proposals))
	ids := make([]uuid.UUID, 0, len(proposals))
	for _, p := range proposals {
		if _, ok := seen[p.InvestorID]; ok || p.InvestorID == uuid.Nil {
			continue
		}
		seen[p.InvestorID] = struct{}{}
		ids = append(ids, p.InvestorID)
	}

	investors, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]*financing.Investor, len(investors))
	for i := range investors {
		found[investors[i].ID] = &investors[i]
	}
	for index, p := range proposals {
		if p.InvestorID == s.allocator.HouseInvestorID() {
			continue
		}
		inv, ok := found[p.InvestorID]
		if !ok {
			return financing.ErrInvestorNotFound.WithDetails(map[string]any{
				"index":       index,
				"investor_id": p.InvestorID.String(),
			})
		}
		if !inv.IsActive {
			return shared.NewDomainErrorf("VALIDATION_ERROR", "Investor %s is inactive and cannot take new investments", inv.Name).
				WithDetails(map[string]any{
					"index":       index,
					"investor_id": p.InvestorID.String(),
				})
		}
	}
	return nil
}

// Investments returns the finalized investment set of a purchase order
func (s *AllocationService) Investments(ctx context.Context, purchaseOrderID uuid.UUID) ([]InvestmentResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, purchaseOrderID); err != nil {
		return nil, err
	}
	investments, err := s.investmentRepo.FindByPurchaseOrder(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(investments))
	for _, inv := range investments {
		ids = append(ids, inv.InvestorID)
	}
	investors, err := s.investorRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*financing.Investor, len(investors))
	for i := range investors {
		byID[investors[i].ID] = &investors[i]
	}

	items := make([]InvestmentResponse, len(investments))
	for i := range investments {
		items[i] = ToInvestmentResponse(&investments[i], byID[investments[i].InvestorID])
	}
	return items, nil
}
