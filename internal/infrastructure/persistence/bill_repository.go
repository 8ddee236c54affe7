package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/billing"
	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by ID with its items
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrBillNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a bill and locks its row for the rest of the transaction
func (r *GormBillRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrBillNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("bill_id = ?", id).Find(&model.Items).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySalesOrder lists bills issued against a sales order
func (r *GormBillRepository) FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]billing.Bill, error) {
	var rows []models.BillModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sales_order_id = ?", salesOrderID).
		Order("issued_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	bills := make([]billing.Bill, len(rows))
	for i := range rows {
		bills[i] = *rows[i].ToDomain()
	}
	return bills, nil
}

// Save creates a bill with its items or updates the bill header.
// Bill items are fixed at issue time.
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BillModel{}).Where("id = ?", bill.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return tx.Create(model).Error
		}
		return tx.Omit("Items").Save(model).Error
	})
}

// ExistsByBillNumber checks whether a bill number is already taken
func (r *GormBillRepository) ExistsByBillNumber(ctx context.Context, billNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("bill_number = ?", billNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormBillRepository implements BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)

// GormPaymentRepository implements PaymentRepository using GORM.
// Buyer payments are append-only.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a payment row
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	return r.db.WithContext(ctx).Create(models.PaymentModelFromDomain(payment)).Error
}

// FindByBill lists the payments recorded against a bill, oldest first
func (r *GormPaymentRepository) FindByBill(ctx context.Context, billID uuid.UUID) ([]billing.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("paid_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]billing.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
