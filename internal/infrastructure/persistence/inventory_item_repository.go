package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/inventory"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryItemNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an inventory item and locks its row for the rest of the transaction
func (r *GormInventoryItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryItemNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds inventory items by IDs; missing IDs are skipped
func (r *GormInventoryItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.InventoryItem, error) {
	if len(ids) == 0 {
		return []inventory.InventoryItem{}, nil
	}
	var rows []models.InventoryItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return inventoryItemsToDomain(rows), nil
}

// FindByPurchaseOrder lists the items received from one purchase order
func (r *GormInventoryItemRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]inventory.InventoryItem, error) {
	var rows []models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return inventoryItemsToDomain(rows), nil
}

// FindAvailable lists items that still have stock to sell
func (r *GormInventoryItemRepository) FindAvailable(ctx context.Context) ([]inventory.InventoryItem, error) {
	var rows []models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Where("available_quantity > 0").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return inventoryItemsToDomain(rows), nil
}

// Save updates an existing item, guarded by its version.
// The domain bumps Version once per change, so the stored row must hold Version-1.
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItemModel{}).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]any{
			"available_quantity": item.AvailableQuantity,
			"version":            item.Version,
			"updated_at":         item.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.WithDetails(map[string]any{"inventory_item_id": item.ID.String()})
	}
	return nil
}

// SaveBatch inserts newly received items
func (r *GormInventoryItemRepository) SaveBatch(ctx context.Context, items []inventory.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]*models.InventoryItemModel, len(items))
	for i := range items {
		rows[i] = models.InventoryItemModelFromDomain(&items[i])
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

func inventoryItemsToDomain(rows []models.InventoryItemModel) []inventory.InventoryItem {
	items := make([]inventory.InventoryItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items
}

// Ensure GormInventoryItemRepository implements InventoryItemRepository
var _ inventory.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
