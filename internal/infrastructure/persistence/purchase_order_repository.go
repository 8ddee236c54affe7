package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by ID with its items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrPurchaseOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a purchase order by ID and locks its row for the rest of the transaction
func (r *GormPurchaseOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrPurchaseOrderNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("position ASC").
		Find(&model.Items).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists purchase orders matching the filter with the total count before pagination
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter trade.PurchaseOrderFilter) ([]trade.PurchaseOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = matchAny(query, filter.Search, "order_number", "vendor_name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.PurchaseOrderModel
	if err := paginate(query, filter.Filter, purchaseOrderSort).
		Preload("Items", orderItemsByPosition).
		Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}
	orders := make([]trade.PurchaseOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, total, nil
}

// Save creates or updates a purchase order, replacing its item rows
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PurchaseOrderModelFromDomain(order)

		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.PurchaseOrderItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
}

// ExistsByOrderNumber checks whether an order number is already taken
func (r *GormPurchaseOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PurchaseOrderModel{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func orderItemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)

// GormPurchaseOrderPaymentRepository implements PurchaseOrderPaymentRepository using GORM
type GormPurchaseOrderPaymentRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderPaymentRepository creates a new GormPurchaseOrderPaymentRepository
func NewGormPurchaseOrderPaymentRepository(db *gorm.DB) *GormPurchaseOrderPaymentRepository {
	return &GormPurchaseOrderPaymentRepository{db: db}
}

// FindByID finds a vendor payment by ID
func (r *GormPurchaseOrderPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrderPayment, error) {
	var model models.PurchaseOrderPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrVendorPaymentNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPurchaseOrder lists vendor payments for an order, oldest first
func (r *GormPurchaseOrderPaymentRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]trade.PurchaseOrderPayment, error) {
	var rows []models.PurchaseOrderPaymentModel
	if err := r.db.WithContext(ctx).
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("paid_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]trade.PurchaseOrderPayment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, nil
}

// Save creates or updates a vendor payment
func (r *GormPurchaseOrderPaymentRepository) Save(ctx context.Context, payment *trade.PurchaseOrderPayment) error {
	return r.db.WithContext(ctx).Save(models.PurchaseOrderPaymentModelFromDomain(payment)).Error
}

// Delete removes a vendor payment
func (r *GormPurchaseOrderPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PurchaseOrderPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return trade.ErrVendorPaymentNotFound
	}
	return nil
}

// Ensure GormPurchaseOrderPaymentRepository implements PurchaseOrderPaymentRepository
var _ trade.PurchaseOrderPaymentRepository = (*GormPurchaseOrderPaymentRepository)(nil)
