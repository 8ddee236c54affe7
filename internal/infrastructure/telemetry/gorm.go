package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig controls GORM tracing and metrics
type DBConfig struct {
	TraceEnabled bool
	// LogFullSQL keeps bound parameters in span statements; development only
	LogFullSQL         bool
	SlowQueryThreshold time.Duration
	DBName             string
}

type queryStartKey struct{}

// InstrumentGorm registers otelgorm spans, a query duration histogram and
// connection pool gauges on db. Slow queries are tagged on the span and logged.
func InstrumentGorm(db *gorm.DB, meter metric.Meter, cfg DBConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.DBName == "" {
		cfg.DBName = "postgresql"
	}

	if cfg.TraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
		if !cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "backoffice_db_query_duration_seconds",
		Description: "Duration of database statements",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return err
	}
	errorsTotal, err := NewCounter(meter, "backoffice_db_query_errors_total", "Database statements that failed", "{errors}")
	if err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			ctx := tx.Statement.Context
			if ctx == nil {
				return
			}
			start, ok := ctx.Value(queryStartKey{}).(time.Time)
			if !ok {
				return
			}
			elapsed := time.Since(start)
			attrs := []attribute.KeyValue{AttrDBOperation.String(op), AttrDBTable.String(tx.Statement.Table)}
			duration.RecordDuration(ctx, elapsed, attrs...)

			failed := tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound)
			if failed {
				errorsTotal.Inc(ctx, attrs...)
			}
			if elapsed < cfg.SlowQueryThreshold {
				return
			}
			span := trace.SpanFromContext(ctx)
			span.SetAttributes(attribute.Bool("db.slow_query", true), attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()))
			logger.Warn("Slow query",
				zap.String("operation", op),
				zap.String("table", tx.Statement.Table),
				zap.Duration("elapsed", elapsed),
				zap.String("trace_id", GetTraceID(ctx)),
			)
		}
	}

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("backoffice:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("backoffice:after_create", after("insert")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("backoffice:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("backoffice:after_query", after("select")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("backoffice:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("backoffice:after_update", after("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("backoffice:before_delete", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("backoffice:after_delete", after("delete")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("backoffice:before_raw", before); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("backoffice:after_raw", after("raw")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("backoffice:before_row", before); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("backoffice:after_row", after("row")); err != nil {
		return err
	}

	if err := registerPoolGauges(db, meter); err != nil {
		return err
	}

	logger.Info("Database instrumentation enabled",
		zap.Bool("tracing", cfg.TraceEnabled),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
	)
	return nil
}

// registerPoolGauges reports sql.DB pool stats on every metric collection
func registerPoolGauges(db *gorm.DB, meter metric.Meter) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	conns, err := meter.Int64ObservableGauge("backoffice_db_pool_connections",
		metric.WithDescription("Database connections by state"),
		metric.WithUnit("{connections}"),
	)
	if err != nil {
		return err
	}
	waits, err := meter.Int64ObservableCounter("backoffice_db_pool_wait_total",
		metric.WithDescription("Connections waited for because the pool was exhausted"),
		metric.WithUnit("{waits}"),
	)
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := sqlDB.Stats()
		o.ObserveInt64(conns, int64(s.InUse), metric.WithAttributes(AttrDBPoolState.String("in_use")))
		o.ObserveInt64(conns, int64(s.Idle), metric.WithAttributes(AttrDBPoolState.String("idle")))
		o.ObserveInt64(conns, int64(s.MaxOpenConnections), metric.WithAttributes(AttrDBPoolState.String("max")))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, conns, waits)
	return err
}
