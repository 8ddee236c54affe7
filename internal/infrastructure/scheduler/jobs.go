package scheduler

import (
	"context"
)

// PayableRefreshJob is the job name for refreshing the outstanding-payable gauges
const PayableRefreshJob = "payable_refresh"

// DefaultPayableRefreshSchedule refreshes the gauges every five minutes
const DefaultPayableRefreshSchedule = "@every 5m"

// PayableCollector refreshes the outstanding-payable gauges
type PayableCollector interface {
	CollectPayables(ctx context.Context)
}

// RegisterPayableRefresh schedules collector on spec, or on the default schedule when spec is empty
func RegisterPayableRefresh(s *Scheduler, spec string, collector PayableCollector) error {
	if spec == "" {
		spec = DefaultPayableRefreshSchedule
	}
	return s.Register(PayableRefreshJob, spec, func(ctx context.Context) error {
		collector.CollectPayables(ctx)
		return ctx.Err()
	})
}
