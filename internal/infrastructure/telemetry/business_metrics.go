package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks investor financing activity: allocations, receipts,
// payouts and the outstanding amounts owed to investors.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	allocationTotal      *Counter
	houseAllocationTotal *Counter
	receiptTotal         *Counter
	payoutTotal          *Counter
	payoutAmountTotal    *Counter

	// Gauge metrics (point-in-time values)
	payableNow *Gauge
	totalDue   *Gauge

	payableProvider PayableProvider
}

// PayableSnapshot is one investor's outstanding position at collection time
type PayableSnapshot struct {
	InvestorID uuid.UUID
	IsHouse    bool
	PayableNow decimal.Decimal
	TotalDue   decimal.Decimal
}

// PayableProvider supplies outstanding positions for periodic gauge collection.
// It keeps the telemetry layer independent of the financing domain.
type PayableProvider interface {
	OutstandingPayables(ctx context.Context) ([]PayableSnapshot, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	PayableProvider PayableProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		payableProvider: cfg.PayableProvider,
	}

	var err error

	bm.allocationTotal, err = NewCounter(
		cfg.Meter,
		"backoffice_investment_allocation_total",
		"Total number of investment sets allocated to purchase orders",
		"{allocations}",
	)
	if err != nil {
		return nil, err
	}

	bm.houseAllocationTotal, err = NewCounter(
		cfg.Meter,
		"backoffice_house_allocation_amount_total",
		"Total amount funded by the house investor in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.receiptTotal, err = NewCounter(
		cfg.Meter,
		"backoffice_purchase_order_received_total",
		"Total number of inventory items created by purchase order receipts",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	bm.payoutTotal, err = NewCounter(
		cfg.Meter,
		"backoffice_investor_payout_total",
		"Total number of investor payouts",
		"{payouts}",
	)
	if err != nil {
		return nil, err
	}

	bm.payoutAmountTotal, err = NewCounter(
		cfg.Meter,
		"backoffice_investor_payout_amount_total",
		"Total amount paid out to investors in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.payableNow, err = NewGauge(
		cfg.Meter,
		"backoffice_investor_payable_now",
		"Amount currently payable to an investor in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.totalDue, err = NewGauge(
		cfg.Meter,
		"backoffice_investor_total_due",
		"Profit earned by an investor and not yet paid, in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

func cents(amount decimal.Decimal) int64 {
	return amount.Shift(2).IntPart()
}

// RecordAllocation records an investment set replacing a purchase order's previous one.
func (bm *BusinessMetrics) RecordAllocation(ctx context.Context, investmentCount int, houseAmount decimal.Decimal) {
	bm.allocationTotal.Inc(ctx, AttrInvestmentCount.Int(investmentCount))
	if houseAmount.IsPositive() {
		bm.houseAllocationTotal.Add(ctx, cents(houseAmount))
	}
}

// RecordReceipt records inventory created when a purchase order is received.
func (bm *BusinessMetrics) RecordReceipt(ctx context.Context, itemCount int) {
	bm.receiptTotal.Add(ctx, int64(itemCount))
}

// RecordPayout records a committed investor payout.
func (bm *BusinessMetrics) RecordPayout(ctx context.Context, investorID uuid.UUID, amount decimal.Decimal) {
	attr := AttrInvestorID.String(investorID.String())
	bm.payoutTotal.Inc(ctx, attr)
	bm.payoutAmountTotal.Add(ctx, cents(amount), attr)
}

// RecordPayable records an investor's outstanding position.
func (bm *BusinessMetrics) RecordPayable(ctx context.Context, snapshot PayableSnapshot) {
	attrs := []attribute.KeyValue{
		AttrInvestorID.String(snapshot.InvestorID.String()),
		AttrHouseInvestor.Bool(snapshot.IsHouse),
	}
	bm.payableNow.Record(ctx, cents(snapshot.PayableNow), attrs...)
	bm.totalDue.Record(ctx, cents(snapshot.TotalDue), attrs...)
}

// CollectPayables refreshes the payable gauges from the provider.
// It is driven by the scheduler and never returns an error; failures are logged.
func (bm *BusinessMetrics) CollectPayables(ctx context.Context) {
	if bm.payableProvider == nil {
		bm.logger.Debug("No payable provider configured, skipping payable metrics collection")
		return
	}

	snapshots, err := bm.payableProvider.OutstandingPayables(ctx)
	if err != nil {
		bm.logger.Warn("Failed to collect outstanding payables", zap.Error(err))
		return
	}
	for _, s := range snapshots {
		bm.RecordPayable(ctx, s)
	}
	bm.logger.Debug("Collected payable metrics", zap.Int("investors", len(snapshots)))
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
