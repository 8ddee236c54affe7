package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvestorRepository implements InvestorRepository using GORM
type GormInvestorRepository struct {
	db *gorm.DB
}

// NewGormInvestorRepository creates a new GormInvestorRepository
func NewGormInvestorRepository(db *gorm.DB) *GormInvestorRepository {
	return &GormInvestorRepository{db: db}
}

// FindByID finds an investor by ID
func (r *GormInvestorRepository) FindByID(ctx context.Context, id uuid.UUID) (*financing.Investor, error) {
	var model models.InvestorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, financing.ErrInvestorNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an investor by ID and locks the row for the rest of the transaction
func (r *GormInvestorRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*financing.Investor, error) {
	var model models.InvestorModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, financing.ErrInvestorNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds all investors with the given IDs; missing IDs are skipped
func (r *GormInvestorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]financing.Investor, error) {
	if len(ids) == 0 {
		return []financing.Investor{}, nil
	}
	var investorModels []models.InvestorModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&investorModels).Error; err != nil {
		return nil, err
	}
	return investorsToDomain(investorModels), nil
}

// FindAll lists investors matching the filter with the total count before pagination
func (r *GormInvestorRepository) FindAll(ctx context.Context, filter financing.InvestorFilter) ([]financing.Investor, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvestorModel{})
	if !filter.IncludeHouse {
		query = query.Where("is_house = ?", false)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	query = matchAny(query, filter.Search, "name", "email", "phone")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var investorModels []models.InvestorModel
	if err := paginate(query, filter.Filter, investorSort).Find(&investorModels).Error; err != nil {
		return nil, 0, err
	}
	return investorsToDomain(investorModels), total, nil
}

// ListAll returns every investor, house included, ordered by name
func (r *GormInvestorRepository) ListAll(ctx context.Context) ([]financing.Investor, error) {
	var investorModels []models.InvestorModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&investorModels).Error; err != nil {
		return nil, err
	}
	return investorsToDomain(investorModels), nil
}

// Save creates or updates an investor
func (r *GormInvestorRepository) Save(ctx context.Context, investor *financing.Investor) error {
	model := models.InvestorModelFromDomain(investor)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an investor
func (r *GormInvestorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvestorModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return financing.ErrInvestorNotFound
	}
	return nil
}

// EnsureHouse inserts the house investor row unless one with the same ID exists
func (r *GormInvestorRepository) EnsureHouse(ctx context.Context, id uuid.UUID) error {
	model := models.InvestorModelFromDomain(financing.NewHouseInvestor(id))
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model).Error
}

func investorsToDomain(investorModels []models.InvestorModel) []financing.Investor {
	investors := make([]financing.Investor, len(investorModels))
	for i := range investorModels {
		investors[i] = *investorModels[i].ToDomain()
	}
	return investors
}

// Ensure GormInvestorRepository implements InvestorRepository
var _ financing.InvestorRepository = (*GormInvestorRepository)(nil)
