package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/billing"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// BillService issues bills to buyers and records the cash they pay
type BillService struct {
	txScope     TransactionScope
	billRepo    billing.BillRepository
	paymentRepo billing.PaymentRepository
	logger      *zap.Logger
}

// NewBillService creates a new BillService
func NewBillService(
	txScope TransactionScope,
	billRepo billing.BillRepository,
	paymentRepo billing.PaymentRepository,
	logger *zap.Logger,
) *BillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillService{
		txScope:     txScope,
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Issue bills an open sales order. Bill items are a fixed copy of the order's
// lines, so later profit statements see exactly what was invoiced.
func (s *BillService) Issue(ctx context.Context, req IssueBillRequest) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "issue",
		telemetry.WithAttribute("sales_order_id", req.SalesOrderID.String()),
	)
	defer span.End()

	billNumber := strings.TrimSpace(req.BillNumber)
	if billNumber == "" {
		billNumber = generateBillNumber()
	} else {
		exists, err := s.billRepo.ExistsByBillNumber(ctx, billNumber)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to check bill number: %w", err)
		}
		if exists {
			err := billing.ErrBillNumberTaken.WithDetails(map[string]any{"bill_number": billNumber})
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	var bill *billing.Bill
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.SalesOrderRepo().FindByIDForUpdate(ctx, req.SalesOrderID)
		if err != nil {
			return err
		}
		if err := order.MarkBilled(); err != nil {
			return err
		}

		bill, err = billing.NewBill(billNumber, order.ID, order.BuyerName, billLines(order))
		if err != nil {
			return err
		}
		if err := repos.BillRepo().Save(ctx, bill); err != nil {
			return err
		}
		return repos.SalesOrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("bill issued",
		zap.String("bill_id", bill.ID.String()),
		zap.String("bill_number", bill.BillNumber),
		zap.String("sales_order_id", bill.SalesOrderID.String()),
		zap.String("total_amount", bill.TotalAmount.StringFixed(2)),
	)
	telemetry.SetOK(span)
	resp := ToBillResponse(bill)
	return &resp, nil
}

func billLines(order *trade.SalesOrder) []billing.BillLineSpec {
	lines := make([]billing.BillLineSpec, len(order.Lines))
	for i, l := range order.Lines {
		lines[i] = billing.BillLineSpec{
			InventoryItemID: l.InventoryItemID,
			ProductName:     l.ProductName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
		}
	}
	return lines
}

// RecordPayment collects cash against a bill. The bill row is locked so
// concurrent payments cannot together exceed the outstanding balance.
func (s *BillService) RecordPayment(ctx context.Context, billID uuid.UUID, req RecordBillPaymentRequest) (*RecordBillPaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "record_payment",
		telemetry.WithAttribute("bill_id", billID.String()),
		telemetry.WithAttribute("amount", req.Amount.String()),
	)
	defer span.End()

	var (
		bill    *billing.Bill
		payment *billing.Payment
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		bill, err = repos.BillRepo().FindByIDForUpdate(ctx, billID)
		if err != nil {
			return err
		}
		payment, err = bill.RecordPayment(req.Amount, req.Method, req.Reference)
		if err != nil {
			return err
		}
		if err := repos.BillPaymentRepo().Create(ctx, payment); err != nil {
			return err
		}
		return repos.BillRepo().Save(ctx, bill)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("bill payment recorded",
		zap.String("bill_id", bill.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("status", string(bill.Status)),
	)
	telemetry.SetOK(span)
	return &RecordBillPaymentResponse{
		Payment:     ToBillPaymentResponse(payment),
		BillStatus:  string(bill.Status),
		PaidAmount:  bill.PaidAmount,
		Outstanding: bill.Outstanding(),
	}, nil
}

// GetByID returns a bill with its payments
func (s *BillService) GetByID(ctx context.Context, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByBill(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bill payments: %w", err)
	}
	resp := ToBillResponse(bill)
	resp.Payments = make([]BillPaymentResponse, len(payments))
	for i := range payments {
		resp.Payments[i] = ToBillPaymentResponse(&payments[i])
	}
	return &resp, nil
}

// ListBySalesOrder returns the bills issued for a sales order
func (s *BillService) ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]BillResponse, error) {
	bills, err := s.billRepo.FindBySalesOrder(ctx, salesOrderID)
	if err != nil {
		return nil, err
	}
	items := make([]BillResponse, len(bills))
	for i := range bills {
		items[i] = ToBillResponse(&bills[i])
	}
	return items, nil
}

func generateBillNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("BILL-%s-%s", time.Now().Format("20060102"), suffix)
}
