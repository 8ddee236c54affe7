package financing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultPayoutIdempotencyTTL is how long an applied Idempotency-Key is remembered
const DefaultPayoutIdempotencyTTL = 24 * time.Hour

// PayoutService records investor payouts under the payable ceiling
type PayoutService struct {
	txScope        TransactionScope
	profitService  *ProfitService
	investorRepo   financing.InvestorRepository
	paymentRepo    financing.InvestorPaymentRepository
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPayoutService creates a new PayoutService
func NewPayoutService(
	txScope TransactionScope,
	profitService *ProfitService,
	investorRepo financing.InvestorRepository,
	paymentRepo financing.InvestorPaymentRepository,
	logger *zap.Logger,
) *PayoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayoutService{
		txScope:        txScope,
		profitService:  profitService,
		investorRepo:   investorRepo,
		paymentRepo:    paymentRepo,
		idempotencyTTL: DefaultPayoutIdempotencyTTL,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PayoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore enables Idempotency-Key handling on payouts
func (s *PayoutService) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	s.idempotency = store
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// Payout pays an investor out of collected profit.
//
// The investor row is locked for the whole read-check-insert sequence, so two
// concurrent payouts for one investor serialize and the second one sees the
// first one's row in its payout sum.
func (s *PayoutService) Payout(ctx context.Context, investorID uuid.UUID, req PayoutRequest) (*PayoutResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "investor_payout", "create",
		telemetry.WithAttribute("investor_id", investorID.String()),
		telemetry.WithAttribute("amount", req.Amount.String()),
	)
	defer span.End()

	key := strings.TrimSpace(req.IdempotencyKey)
	if key != "" && s.idempotency != nil {
		done, err := s.idempotency.IsProcessed(ctx, s.idempotencyKey(investorID, key))
		if err != nil {
			s.logger.Warn("idempotency lookup failed, relying on the database constraint",
				zap.String("investor_id", investorID.String()),
				zap.Error(err),
			)
		} else if done {
			err := shared.ErrDuplicateRequest.WithDetails(map[string]any{"idempotency_key": key})
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	var (
		payment       *financing.InvestorPayment
		payableBefore decimal.Decimal
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.InvestorRepo().FindByIDForUpdate(ctx, investorID); err != nil {
			return err
		}

		profit, err := s.profitService.ProfitInTx(ctx, repos, investorID)
		if err != nil {
			return err
		}
		payableBefore = profit.PayableNow

		if err := financing.CheckPayout(profit, req.Amount); err != nil {
			return err
		}

		payment, err = financing.NewInvestorPayment(investorID, req.Amount, req.Description)
		if err != nil {
			return err
		}
		payment.IdempotencyKey = key
		return repos.InvestorPaymentRepo().Create(ctx, payment)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Info("investor payout rejected",
			zap.String("investor_id", investorID.String()),
			zap.String("amount", req.Amount.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if key != "" && s.idempotency != nil {
		if _, err := s.idempotency.MarkProcessed(ctx, s.idempotencyKey(investorID, key), s.idempotencyTTL); err != nil {
			s.logger.Warn("failed to record idempotency key",
				zap.String("investor_id", investorID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("investor paid",
		zap.String("investor_id", investorID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("payable_before", payableBefore.StringFixed(2)),
	)

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, financing.NewInvestorPaidEvent(payment, payableBefore)); err != nil {
			s.logger.Warn("failed to publish investor paid event", zap.Error(err))
		}
	}

	telemetry.SetOK(span)
	resp := ToPayoutResponse(payment)
	resp.PayableBefore = payableBefore
	resp.PayableAfter = payableBefore.Sub(payment.Amount)
	return &resp, nil
}

// ListPayouts lists an investor's payouts, newest first
func (s *PayoutService) ListPayouts(ctx context.Context, investorID uuid.UUID, filter shared.Filter) ([]PayoutResponse, int64, error) {
	if _, err := s.investorRepo.FindByID(ctx, investorID); err != nil {
		return nil, 0, err
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	payments, total, err := s.paymentRepo.FindByInvestor(ctx, investorID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payouts: %w", err)
	}
	items := make([]PayoutResponse, len(payments))
	for i := range payments {
		items[i] = ToPayoutResponse(&payments[i])
	}
	return items, total, nil
}

func (s *PayoutService) idempotencyKey(investorID uuid.UUID, key string) string {
	return "payout:" + investorID.String() + ":" + key
}
