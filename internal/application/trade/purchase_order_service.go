package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/inventory"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	txScope        TransactionScope
	orderRepo      trade.PurchaseOrderRepository
	paymentRepo    trade.PurchaseOrderPaymentRepository
	inventoryRepo  inventory.InventoryItemRepository
	allocation     *financingapp.AllocationService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	txScope TransactionScope,
	orderRepo trade.PurchaseOrderRepository,
	paymentRepo trade.PurchaseOrderPaymentRepository,
	inventoryRepo inventory.InventoryItemRepository,
	allocation *financingapp.AllocationService,
	logger *zap.Logger,
) *PurchaseOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseOrderService{
		txScope:       txScope,
		orderRepo:     orderRepo,
		paymentRepo:   paymentRepo,
		inventoryRepo: inventoryRepo,
		allocation:    allocation,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a purchase order and allocates its investments in one transaction
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderWriteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "create",
		telemetry.WithAttribute("vendor_name", req.VendorName),
		telemetry.WithAttribute("item_count", len(req.Items)),
	)
	defer span.End()

	orderNumber := strings.TrimSpace(req.OrderNumber)
	if orderNumber == "" {
		orderNumber = generateOrderNumber("PO")
	} else {
		exists, err := s.orderRepo.ExistsByOrderNumber(ctx, orderNumber)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to check order number: %w", err)
		}
		if exists {
			err := trade.ErrOrderNumberTaken.WithDetails(map[string]any{"order_number": orderNumber})
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	order, err := trade.NewPurchaseOrder(orderNumber, req.VendorName, toLineSpecs(req.Items))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	order.SetVendorPhone(req.VendorPhone)
	order.SetNotes(req.Notes)

	var alloc *financing.Allocation
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return err
		}
		var err error
		alloc, err = s.allocation.AllocateInTx(ctx, repos, order, financingapp.ToProposals(req.Investments))
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
	)
	s.publish(ctx, order, financing.NewInvestmentsAllocatedEvent(alloc))

	telemetry.SetOK(span)
	return s.writeResponse(order, alloc), nil
}

// GetByID returns a purchase order with its vendor payments
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByPurchaseOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor payments: %w", err)
	}
	resp := ToPurchaseOrderResponse(order)
	resp.Payments = make([]VendorPaymentResponse, len(payments))
	for i := range payments {
		resp.Payments[i] = ToVendorPaymentResponse(&payments[i])
	}
	return &resp, nil
}

// List lists purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	domainFilter := trade.PurchaseOrderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}
	if filter.Status != "" {
		status := trade.PurchaseOrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainErrorf("INVALID_STATUS", "Unknown purchase order status %q", filter.Status)
		}
		domainFilter.Status = &status
	}

	orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		items[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return items, total, nil
}

// Update edits a non-terminal purchase order. Whenever the lines or the
// investment proposal change, the investment set is rebuilt against the new
// total in the same transaction.
func (s *PurchaseOrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderWriteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "update",
		telemetry.WithAttribute("order_id", orderID.String()),
	)
	defer span.End()

	var (
		order *trade.PurchaseOrder
		alloc *financing.Allocation
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.PurchaseOrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.CanModify() {
			return shared.NewDomainErrorf("INVALID_STATE", "Cannot modify order in %s status", order.Status)
		}

		if req.VendorPhone != nil {
			order.SetVendorPhone(*req.VendorPhone)
		}
		if req.Notes != nil {
			order.SetNotes(*req.Notes)
		}
		itemsChanged := req.Items != nil
		if itemsChanged {
			if err := order.ReplaceItems(toLineSpecs(req.Items)); err != nil {
				return err
			}
		}
		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return err
		}

		var proposals []financing.Proposal
		switch {
		case req.Investments != nil:
			proposals = financingapp.ToProposals(*req.Investments)
		case itemsChanged:
			current, err := repos.InvestmentRepo().FindByPurchaseOrder(ctx, order.ID)
			if err != nil {
				return fmt.Errorf("failed to load investments: %w", err)
			}
			proposals = s.carryOver(order, current)
		default:
			return nil
		}
		alloc, err = s.allocation.AllocateInTx(ctx, repos, order, proposals)
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("purchase order updated",
		zap.String("order_id", order.ID.String()),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.Bool("reallocated", alloc != nil),
	)
	if alloc != nil {
		s.publish(ctx, order, financing.NewInvestmentsAllocatedEvent(alloc))
	} else {
		s.publish(ctx, order)
	}

	telemetry.SetOK(span)
	return s.writeResponse(order, alloc), nil
}

// carryOver rebuilds the proposal behind an existing investment set so it can
// be re-allocated against a changed total. The house row is dropped and
// recomputed; full investments follow the new total.
func (s *PurchaseOrderService) carryOver(order *trade.PurchaseOrder, current []financing.Investment) []financing.Proposal {
	proposals := make([]financing.Proposal, 0, len(current))
	for _, inv := range current {
		if inv.InvestorID == s.allocation.HouseInvestorID() {
			continue
		}
		p := financing.Proposal{
			InvestorID:       inv.InvestorID,
			InvestmentAmount: inv.InvestmentAmount,
			ProfitPercentage: inv.ProfitPercentage.Decimal(),
			IsFullInvestment: inv.IsFullInvestment,
		}
		if inv.IsFullInvestment {
			p.InvestmentAmount = order.TotalAmount
		}
		proposals = append(proposals, p)
	}
	return proposals
}

// Approve approves a pending purchase order
func (s *PurchaseOrderService) Approve(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, "approve", (*trade.PurchaseOrder).Approve)
}

// MarkOrdered records that an approved order was placed with the vendor
func (s *PurchaseOrderService) MarkOrdered(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, "mark_ordered", (*trade.PurchaseOrder).MarkOrdered)
}

// Cancel cancels a non-terminal purchase order. Its investments stay in
// place; a cancelled order simply never produces revenue.
func (s *PurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, "cancel", func(o *trade.PurchaseOrder) error {
		return o.Cancel(req.Reason)
	})
}

func (s *PurchaseOrderService) transition(ctx context.Context, orderID uuid.UUID, operation string, apply func(*trade.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", operation,
		telemetry.WithAttribute("order_id", orderID.String()),
	)
	defer span.End()

	var order *trade.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.PurchaseOrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := apply(order); err != nil {
			return err
		}
		return repos.PurchaseOrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("purchase order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("operation", operation),
		zap.String("status", order.Status.String()),
	)
	s.publish(ctx, order)

	telemetry.SetOK(span)
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// Receive marks an order as delivered and books one inventory item per line
func (s *PurchaseOrderService) Receive(ctx context.Context, orderID uuid.UUID) (*ReceiveResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "receive",
		telemetry.WithAttribute("order_id", orderID.String()),
	)
	defer span.End()

	var (
		order *trade.PurchaseOrder
		lines []trade.ReceivedLine
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.PurchaseOrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		items := make([]inventory.InventoryItem, 0, len(order.Items))
		ids := make(map[uuid.UUID]uuid.UUID, len(order.Items))
		for _, line := range order.Items {
			item, err := inventory.NewInventoryItem(order.ID, line.ID, line.ProductName, line.Quantity, line.UnitCost)
			if err != nil {
				return err
			}
			items = append(items, *item)
			ids[line.ID] = item.ID
		}

		lines, err = order.Receive(ids)
		if err != nil {
			return err
		}
		if err := repos.InventoryItemRepo().SaveBatch(ctx, items); err != nil {
			return fmt.Errorf("failed to save inventory items: %w", err)
		}
		return repos.PurchaseOrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("purchase order received",
		zap.String("order_id", order.ID.String()),
		zap.Int("inventory_items", len(lines)),
	)
	s.publish(ctx, order)

	telemetry.SetOK(span)
	return &ReceiveResponse{
		Order:    ToPurchaseOrderResponse(order),
		Received: toReceivedLineResponses(lines),
	}, nil
}

// Inventory lists the inventory items booked against a purchase order
func (s *PurchaseOrderService) Inventory(ctx context.Context, orderID uuid.UUID) ([]InventoryItemResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := s.inventoryRepo.FindByPurchaseOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]InventoryItemResponse, len(items))
	for i := range items {
		out[i] = ToInventoryItemResponse(&items[i])
	}
	return out, nil
}

// AddPayment records a payment to the order's vendor
func (s *PurchaseOrderService) AddPayment(ctx context.Context, orderID uuid.UUID, req VendorPaymentRequest) (*VendorPaymentResultResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "vendor_payment", "create",
		telemetry.WithAttribute("order_id", orderID.String()),
		telemetry.WithAttribute("amount", req.Amount.String()),
	)
	defer span.End()

	var (
		order   *trade.PurchaseOrder
		payment *trade.PurchaseOrderPayment
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.PurchaseOrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		payment, err = order.AddPayment(req.Amount, trade.PaymentMethod(req.Method), req.Reference, req.Note)
		if err != nil {
			return err
		}
		if err := repos.PurchaseOrderPaymentRepo().Save(ctx, payment); err != nil {
			return err
		}
		return repos.PurchaseOrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("vendor payment recorded",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)
	telemetry.SetOK(span)
	return vendorPaymentResult(order, payment), nil
}

// EditPayment changes a vendor payment and re-balances the order
func (s *PurchaseOrderService) EditPayment(ctx context.Context, orderID, paymentID uuid.UUID, req VendorPaymentRequest) (*VendorPaymentResultResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "vendor_payment", "update",
		telemetry.WithAttribute("order_id", orderID.String()),
		telemetry.WithAttribute("payment_id", paymentID.String()),
	)
	defer span.End()

	var (
		order   *trade.PurchaseOrder
		payment *trade.PurchaseOrderPayment
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, payment, err = s.loadPayment(ctx, repos, orderID, paymentID)
		if err != nil {
			return err
		}
		if err := order.EditPayment(payment, req.Amount, trade.PaymentMethod(req.Method), req.Reference, req.Note); err != nil {
			return err
		}
		if err := repos.PurchaseOrderPaymentRepo().Save(ctx, payment); err != nil {
			return err
		}
		return repos.PurchaseOrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetOK(span)
	return vendorPaymentResult(order, payment), nil
}

// DeletePayment removes a vendor payment and re-balances the order
func (s *PurchaseOrderService) DeletePayment(ctx context.Context, orderID, paymentID uuid.UUID) (*VendorPaymentResultResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "vendor_payment", "delete",
		telemetry.WithAttribute("order_id", orderID.String()),
		telemetry.WithAttribute("payment_id", paymentID.String()),
	)
	defer span.End()

	var order *trade.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var (
			payment *trade.PurchaseOrderPayment
			err     error
		)
		order, payment, err = s.loadPayment(ctx, repos, orderID, paymentID)
		if err != nil {
			return err
		}
		if err := order.RemovePayment(payment); err != nil {
			return err
		}
		if err := repos.PurchaseOrderPaymentRepo().Delete(ctx, payment.ID); err != nil {
			return err
		}
		return repos.PurchaseOrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetOK(span)
	return vendorPaymentResult(order, nil), nil
}

func (s *PurchaseOrderService) loadPayment(ctx context.Context, repos TransactionalRepositories, orderID, paymentID uuid.UUID) (*trade.PurchaseOrder, *trade.PurchaseOrderPayment, error) {
	order, err := repos.PurchaseOrderRepo().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	payment, err := repos.PurchaseOrderPaymentRepo().FindByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	if payment.PurchaseOrderID != order.ID {
		return nil, nil, trade.ErrVendorPaymentNotFound
	}
	return order, payment, nil
}

func vendorPaymentResult(order *trade.PurchaseOrder, payment *trade.PurchaseOrderPayment) *VendorPaymentResultResponse {
	resp := &VendorPaymentResultResponse{
		PaidAmount: order.PaidAmount,
		DueAmount:  order.DueAmount,
	}
	if payment != nil {
		p := ToVendorPaymentResponse(payment)
		resp.Payment = &p
	}
	return resp
}

func (s *PurchaseOrderService) writeResponse(order *trade.PurchaseOrder, alloc *financing.Allocation) *PurchaseOrderWriteResponse {
	resp := &PurchaseOrderWriteResponse{Order: ToPurchaseOrderResponse(order)}
	if alloc != nil {
		a := financingapp.ToAllocationResponse(alloc)
		resp.Allocation = &a
	}
	return resp
}

// publish sends the order's pending events plus any extras, after commit
func (s *PurchaseOrderService) publish(ctx context.Context, order *trade.PurchaseOrder, extra ...shared.DomainEvent) {
	events := append(order.GetDomainEvents(), extra...)
	order.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish purchase order events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

// generateOrderNumber returns a readable number such as PO-20240131-1A2B3C4D
func generateOrderNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), suffix)
}
