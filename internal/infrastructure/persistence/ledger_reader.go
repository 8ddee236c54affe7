package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerReader reads inventory, billing and sales rows for the profit calculators
type GormLedgerReader struct {
	db *gorm.DB
}

// NewGormLedgerReader creates a new GormLedgerReader
func NewGormLedgerReader(db *gorm.DB) *GormLedgerReader {
	return &GormLedgerReader{db: db}
}

// StockLotsByPurchaseOrders returns the inventory items received from the given purchase orders
func (r *GormLedgerReader) StockLotsByPurchaseOrders(ctx context.Context, purchaseOrderIDs []uuid.UUID) ([]financing.StockLot, error) {
	lots := []financing.StockLot{}
	if len(purchaseOrderIDs) == 0 {
		return lots, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItemModel{}).
		Select("id AS inventory_item_id, purchase_order_id, purchase_price").
		Where("purchase_order_id IN ?", purchaseOrderIDs).
		Order("created_at ASC").
		Scan(&lots).Error
	return lots, err
}

// SaleLinesByInventoryItems returns the bill items that sold units of the given inventory items
func (r *GormLedgerReader) SaleLinesByInventoryItems(ctx context.Context, inventoryItemIDs []uuid.UUID) ([]financing.SaleLine, error) {
	lines := []financing.SaleLine{}
	if len(inventoryItemIDs) == 0 {
		return lines, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.BillItemModel{}).
		Select("id AS bill_item_id, bill_id, inventory_item_id, quantity, total_price").
		Where("inventory_item_id IN ?", inventoryItemIDs).
		Scan(&lines).Error
	return lines, err
}

// BillCollections returns each bill's total with the sum of payments recorded against it
func (r *GormLedgerReader) BillCollections(ctx context.Context, billIDs []uuid.UUID) ([]financing.BillCollection, error) {
	bills := []financing.BillCollection{}
	if len(billIDs) == 0 {
		return bills, nil
	}
	err := r.db.WithContext(ctx).
		Table("bills AS b").
		Select("b.id AS bill_id, b.total_amount AS total_amount, COALESCE(SUM(p.amount), 0) AS collected").
		Joins("LEFT JOIN payments AS p ON p.bill_id = b.id").
		Where("b.id IN ?", billIDs).
		Group("b.id, b.total_amount").
		Scan(&bills).Error
	return bills, err
}

// OrderCostLines returns, per inventory item drawn by a sales order, its cost basis and quantity sold
func (r *GormLedgerReader) OrderCostLines(ctx context.Context, salesOrderID uuid.UUID) ([]financing.OrderCostLine, error) {
	lines := []financing.OrderCostLine{}
	err := r.db.WithContext(ctx).
		Table("sales_order_lines AS l").
		Select("i.id AS inventory_item_id, i.purchase_order_id AS purchase_order_id, i.purchase_price AS purchase_price, SUM(l.quantity) AS quantity_sold").
		Joins("JOIN inventory_items AS i ON i.id = l.inventory_item_id").
		Where("l.order_id = ?", salesOrderID).
		Group("i.id, i.purchase_order_id, i.purchase_price").
		Scan(&lines).Error
	return lines, err
}

// OrderBillTotals returns the total of every bill issued against a sales order
func (r *GormLedgerReader) OrderBillTotals(ctx context.Context, salesOrderID uuid.UUID) ([]decimal.Decimal, error) {
	totals := []decimal.Decimal{}
	err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("sales_order_id = ?", salesOrderID).
		Order("issued_at ASC").
		Pluck("total_amount", &totals).Error
	return totals, err
}

// Ensure GormLedgerReader implements LedgerReader
var _ financing.LedgerReader = (*GormLedgerReader)(nil)
