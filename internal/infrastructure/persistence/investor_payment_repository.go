package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvestorPaymentRepository implements InvestorPaymentRepository using GORM.
// Payout rows are append-only.
type GormInvestorPaymentRepository struct {
	db *gorm.DB
}

// NewGormInvestorPaymentRepository creates a new GormInvestorPaymentRepository
func NewGormInvestorPaymentRepository(db *gorm.DB) *GormInvestorPaymentRepository {
	return &GormInvestorPaymentRepository{db: db}
}

// Create inserts a payout row. A reused idempotency key surfaces as a duplicate request.
func (r *GormInvestorPaymentRepository) Create(ctx context.Context, payment *financing.InvestorPayment) error {
	err := r.db.WithContext(ctx).Create(models.InvestorPaymentModelFromDomain(payment)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrDuplicateRequest.WithDetails(map[string]any{"idempotency_key": payment.IdempotencyKey})
	}
	return err
}

// FindByInvestor lists an investor's payouts, newest first by default
func (r *GormInvestorPaymentRepository) FindByInvestor(ctx context.Context, investorID uuid.UUID, filter shared.Filter) ([]financing.InvestorPayment, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InvestorPaymentModel{}).
		Where("investor_id = ?", investorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InvestorPaymentModel
	if err := paginate(query, filter, payoutSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	payments := make([]financing.InvestorPayment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, total, nil
}

// SumByInvestor returns the total paid out to one investor
func (r *GormInvestorPaymentRepository) SumByInvestor(ctx context.Context, investorID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.InvestorPaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("investor_id = ?", investorID).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

type investorPaidTotal struct {
	InvestorID uuid.UUID
	Total      decimal.Decimal
}

// SumAllByInvestor returns total payouts keyed by investor; investors never paid are absent
func (r *GormInvestorPaymentRepository) SumAllByInvestor(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []investorPaidTotal
	if err := r.db.WithContext(ctx).
		Model(&models.InvestorPaymentModel{}).
		Select("investor_id, COALESCE(SUM(amount), 0) AS total").
		Group("investor_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.InvestorID] = row.Total
	}
	return totals, nil
}

// Ensure GormInvestorPaymentRepository implements InvestorPaymentRepository
var _ financing.InvestorPaymentRepository = (*GormInvestorPaymentRepository)(nil)
