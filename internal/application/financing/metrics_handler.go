package financing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/domain/trade"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// MetricsRecorder receives financing activity counters
type MetricsRecorder interface {
	RecordAllocation(ctx context.Context, investmentCount int, houseAmount decimal.Decimal)
	RecordReceipt(ctx context.Context, itemCount int)
	RecordPayout(ctx context.Context, investorID uuid.UUID, amount decimal.Decimal)
}

// MetricsEventHandler turns committed financing events into metrics
type MetricsEventHandler struct {
	recorder MetricsRecorder
	logger   *zap.Logger
}

// NewMetricsEventHandler creates a new MetricsEventHandler
func NewMetricsEventHandler(recorder MetricsRecorder, logger *zap.Logger) *MetricsEventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsEventHandler{recorder: recorder, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *MetricsEventHandler) EventTypes() []string {
	return []string{
		financing.EventTypeInvestmentsAllocated,
		financing.EventTypeInvestorPaid,
		trade.EventTypePurchaseOrderReceived,
	}
}

// Handle records the metric matching the event
func (h *MetricsEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *financing.InvestmentsAllocatedEvent:
		h.recorder.RecordAllocation(ctx, e.InvestmentCount, e.HouseAmount)
	case *financing.InvestorPaidEvent:
		h.recorder.RecordPayout(ctx, e.InvestorID, e.Amount)
	case *trade.PurchaseOrderReceivedEvent:
		h.recorder.RecordReceipt(ctx, len(e.Lines))
	default:
		h.logger.Error("unexpected event type", zap.String("actual", event.EventType()))
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	return nil
}

// PayableSnapshots adapts the statistics service to the telemetry payable provider
type PayableSnapshots struct {
	statistics *StatisticsService
}

// NewPayableSnapshots creates a new PayableSnapshots
func NewPayableSnapshots(statistics *StatisticsService) *PayableSnapshots {
	return &PayableSnapshots{statistics: statistics}
}

// OutstandingPayables returns every investor's payable and due amounts
func (p *PayableSnapshots) OutstandingPayables(ctx context.Context) ([]telemetry.PayableSnapshot, error) {
	summaries, err := p.statistics.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]telemetry.PayableSnapshot, len(summaries))
	for i, s := range summaries {
		out[i] = telemetry.PayableSnapshot{
			InvestorID: s.Investor.ID,
			IsHouse:    s.Investor.IsHouse,
			PayableNow: s.Profit.PayableNow,
			TotalDue:   s.Profit.TotalDue,
		}
	}
	return out, nil
}

var (
	_ shared.EventHandler       = (*MetricsEventHandler)(nil)
	_ MetricsRecorder           = (*telemetry.BusinessMetrics)(nil)
	_ telemetry.PayableProvider = (*PayableSnapshots)(nil)
)
