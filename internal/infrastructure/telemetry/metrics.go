package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys. HTTP and DB follow the OpenTelemetry names; the rest are ours.
var (
	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrHTTPRoute      = attribute.Key("http.route")

	AttrDBOperation = attribute.Key("db.operation")
	AttrDBTable     = attribute.Key("db.table")
	AttrDBPoolState = attribute.Key("db.pool.state")

	AttrInvestorID      = attribute.Key("investor_id")
	AttrHouseInvestor   = attribute.Key("house_investor")
	AttrInvestmentCount = attribute.Key("investment_count")
)

// Histogram buckets, in seconds
var (
	HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	DBDurationBuckets   = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
)

func instrumentErr(kind, name string, err error) error {
	return fmt.Errorf("create %s %s: %w", kind, name, err)
}

// Counter only goes up
type Counter struct{ c metric.Int64Counter }

func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, instrumentErr("counter", name, err)
	}
	return &Counter{c}, nil
}

func (c *Counter) Add(ctx context.Context, n int64, attrs ...attribute.KeyValue) {
	c.c.Add(ctx, n, metric.WithAttributes(attrs...))
}

func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

// HistogramOpts describes a histogram. Empty Boundaries keeps the SDK's buckets.
type HistogramOpts struct {
	Name        string
	Description string
	Unit        string
	Boundaries  []float64
}

type Histogram struct{ h metric.Float64Histogram }

func NewHistogram(meter metric.Meter, opts HistogramOpts) (*Histogram, error) {
	options := []metric.Float64HistogramOption{metric.WithDescription(opts.Description), metric.WithUnit(opts.Unit)}
	if len(opts.Boundaries) > 0 {
		options = append(options, metric.WithExplicitBucketBoundaries(opts.Boundaries...))
	}
	h, err := meter.Float64Histogram(opts.Name, options...)
	if err != nil {
		return nil, instrumentErr("histogram", opts.Name, err)
	}
	return &Histogram{h}, nil
}

func (h *Histogram) Record(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	h.h.Record(ctx, v, metric.WithAttributes(attrs...))
}

// RecordDuration records d in seconds
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.Record(ctx, d.Seconds(), attrs...)
}

// Gauge reports the latest value per attribute set
type Gauge struct{ g metric.Int64Gauge }

func NewGauge(meter metric.Meter, name, description, unit string) (*Gauge, error) {
	g, err := meter.Int64Gauge(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, instrumentErr("gauge", name, err)
	}
	return &Gauge{g}, nil
}

func (g *Gauge) Record(ctx context.Context, v int64, attrs ...attribute.KeyValue) {
	g.g.Record(ctx, v, metric.WithAttributes(attrs...))
}
