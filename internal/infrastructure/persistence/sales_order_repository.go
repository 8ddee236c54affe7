package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order by ID with its lines
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var model models.SalesOrderModel
	if err := r.db.WithContext(ctx).Preload("Lines").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrSalesOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a sales order by ID and locks its row for the rest of the transaction
func (r *GormSalesOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var model models.SalesOrderModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrSalesOrderNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Find(&model.Lines).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists sales orders with the total count before pagination
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SalesOrderModel{})
	query = matchAny(query, filter.Search, "order_number", "buyer_name")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.SalesOrderModel
	if err := paginate(query, filter, salesOrderSort).Preload("Lines").Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}
	orders := make([]trade.SalesOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, total, nil
}

// Save creates or updates a sales order, replacing its line rows
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.SalesOrderModelFromDomain(order)
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.SalesOrderLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Create(&model.Lines).Error
	})
}

// ExistsByOrderNumber checks whether an order number is already taken
func (r *GormSalesOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalesOrderModel{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
