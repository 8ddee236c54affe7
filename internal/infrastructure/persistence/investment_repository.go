package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvestmentRepository implements InvestmentRepository using GORM
type GormInvestmentRepository struct {
	db *gorm.DB
}

// NewGormInvestmentRepository creates a new GormInvestmentRepository
func NewGormInvestmentRepository(db *gorm.DB) *GormInvestmentRepository {
	return &GormInvestmentRepository{db: db}
}

// FindByPurchaseOrder returns the investment set of one purchase order
func (r *GormInvestmentRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]financing.Investment, error) {
	var rows []models.InvestmentModel
	if err := r.db.WithContext(ctx).
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return investmentsToDomain(rows), nil
}

// FindByPurchaseOrders returns the investment sets of several purchase orders
func (r *GormInvestmentRepository) FindByPurchaseOrders(ctx context.Context, purchaseOrderIDs []uuid.UUID) ([]financing.Investment, error) {
	if len(purchaseOrderIDs) == 0 {
		return []financing.Investment{}, nil
	}
	var rows []models.InvestmentModel
	if err := r.db.WithContext(ctx).
		Where("purchase_order_id IN ?", purchaseOrderIDs).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return investmentsToDomain(rows), nil
}

// FindByInvestor returns every investment held by an investor
func (r *GormInvestmentRepository) FindByInvestor(ctx context.Context, investorID uuid.UUID) ([]financing.Investment, error) {
	var rows []models.InvestmentModel
	if err := r.db.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return investmentsToDomain(rows), nil
}

// FindAll returns every investment row
func (r *GormInvestmentRepository) FindAll(ctx context.Context) ([]financing.Investment, error) {
	var rows []models.InvestmentModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return investmentsToDomain(rows), nil
}

// CountByInvestor counts the investments referencing an investor
func (r *GormInvestmentRepository) CountByInvestor(ctx context.Context, investorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvestmentModel{}).
		Where("investor_id = ?", investorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceForPurchaseOrder deletes the order's current investment set and inserts the new one.
// Callers run it inside a transaction so readers never see a partial set.
func (r *GormInvestmentRepository) ReplaceForPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID, investments []financing.Investment) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("purchase_order_id = ?", purchaseOrderID).
		Delete(&models.InvestmentModel{}).Error; err != nil {
		return err
	}
	if len(investments) == 0 {
		return nil
	}
	rows := make([]*models.InvestmentModel, len(investments))
	for i := range investments {
		investments[i].PurchaseOrderID = purchaseOrderID
		rows[i] = models.InvestmentModelFromDomain(&investments[i])
	}
	return db.Create(rows).Error
}

func investmentsToDomain(rows []models.InvestmentModel) []financing.Investment {
	investments := make([]financing.Investment, len(rows))
	for i := range rows {
		investments[i] = *rows[i].ToDomain()
	}
	return investments
}

// Ensure GormInvestmentRepository implements InvestmentRepository
var _ financing.InvestmentRepository = (*GormInvestmentRepository)(nil)
