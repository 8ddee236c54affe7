package trade

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/inventory"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SalesOrderService handles resale orders against received inventory
type SalesOrderService struct {
	txScope       TransactionScope
	orderRepo     trade.SalesOrderRepository
	inventoryRepo inventory.InventoryItemRepository
	logger        *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	txScope TransactionScope,
	orderRepo trade.SalesOrderRepository,
	inventoryRepo inventory.InventoryItemRepository,
	logger *zap.Logger,
) *SalesOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesOrderService{
		txScope:       txScope,
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// Create creates a sales order and reserves stock for each line.
// Inventory rows are locked in the order the lines name them. Lines on the
// same item are summed and reserved once, so each row is written once.
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", "create",
		telemetry.WithAttribute("buyer_name", req.BuyerName),
		telemetry.WithAttribute("line_count", len(req.Lines)),
	)
	defer span.End()

	orderNumber := strings.TrimSpace(req.OrderNumber)
	if orderNumber == "" {
		orderNumber = generateOrderNumber("SO")
	} else {
		exists, err := s.orderRepo.ExistsByOrderNumber(ctx, orderNumber)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if exists {
			err := trade.ErrOrderNumberTaken.WithDetails(map[string]any{"order_number": orderNumber})
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	var order *trade.SalesOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		locked := make(map[uuid.UUID]*inventory.InventoryItem, len(req.Lines))
		wanted := make(map[uuid.UUID]decimal.Decimal, len(req.Lines))
		touched := make([]*inventory.InventoryItem, 0, len(req.Lines))
		specs := make([]trade.SalesLineSpec, len(req.Lines))
		for idx, line := range req.Lines {
			item, ok := locked[line.InventoryItemID]
			if !ok {
				var err error
				item, err = repos.InventoryItemRepo().FindByIDForUpdate(ctx, line.InventoryItemID)
				if err != nil {
					if shared.IsNotFound(err) {
						return inventory.ErrInventoryItemNotFound.WithDetails(map[string]any{
							"line":              idx,
							"inventory_item_id": line.InventoryItemID.String(),
						})
					}
					return err
				}
				locked[line.InventoryItemID] = item
				wanted[item.ID] = decimal.Zero
				touched = append(touched, item)
			}
			wanted[item.ID] = wanted[item.ID].Add(line.Quantity)
			specs[idx] = trade.SalesLineSpec{
				InventoryItemID: item.ID,
				ProductName:     item.ProductName,
				Quantity:        line.Quantity,
				UnitPrice:       line.UnitPrice,
			}
		}

		var err error
		order, err = trade.NewSalesOrder(orderNumber, req.BuyerName, specs)
		if err != nil {
			return err
		}
		order.BuyerPhone = strings.TrimSpace(req.BuyerPhone)
		order.Notes = req.Notes

		for _, item := range touched {
			if err := item.Reserve(wanted[item.ID]); err != nil {
				return err
			}
			if err := repos.InventoryItemRepo().Save(ctx, item); err != nil {
				return err
			}
		}
		return repos.SalesOrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("sales order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
	)
	telemetry.SetOK(span)
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// GetByID returns a sales order
func (s *SalesOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// List lists sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, filter SalesOrderListFilter) ([]SalesOrderResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		items[i] = ToSalesOrderResponse(&orders[i])
	}
	return items, total, nil
}

// AvailableInventory lists inventory items that still have stock to sell
func (s *SalesOrderService) AvailableInventory(ctx context.Context) ([]InventoryItemResponse, error) {
	items, err := s.inventoryRepo.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]InventoryItemResponse, len(items))
	for i := range items {
		out[i] = ToInventoryItemResponse(&items[i])
	}
	return out, nil
}
