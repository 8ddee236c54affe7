package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of application spans
const TracerName = "backoffice"

// SpanOption adjusts a span before it starts
type SpanOption func(*spanConfig)

type spanConfig struct {
	kind  trace.SpanKind
	attrs []attribute.KeyValue
}

// WithAttribute records key on the span. IDs and money become strings, so
// amounts keep every decimal place.
func WithAttribute(key string, value any) SpanOption {
	return func(c *spanConfig) { c.attrs = append(c.attrs, attr(key, value)) }
}

func WithSpanKind(kind trace.SpanKind) SpanOption {
	return func(c *spanConfig) { c.kind = kind }
}

// StartSpan starts an internal span on the global provider; the caller ends it
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, trace.Span) {
	cfg := spanConfig{kind: trace.SpanKindInternal}
	for _, opt := range opts {
		opt(&cfg)
	}
	return otel.Tracer(TracerName).Start(ctx, name,
		trace.WithSpanKind(cfg.kind),
		trace.WithAttributes(cfg.attrs...),
	)
}

// StartServiceSpan names the span "<service>.<method>", e.g. "investor_payout.create"
func StartServiceSpan(ctx context.Context, service, method string, opts ...SpanOption) (context.Context, trace.Span) {
	return StartSpan(ctx, service+"."+method, opts...)
}

// RecordError marks span failed. A nil span or error is ignored.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func SetOK(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// GetTraceID is the hex trace ID active in ctx, or ""
func GetTraceID(ctx context.Context) string {
	if id := trace.SpanContextFromContext(ctx).TraceID(); id.IsValid() {
		return id.String()
	}
	return ""
}

func attr(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case float64:
		return attribute.Float64(key, v)
	case uuid.UUID:
		return attribute.String(key, v.String())
	case decimal.Decimal:
		return attribute.String(key, v.String())
	case fmt.Stringer:
		return attribute.String(key, v.String())
	}
	return attribute.String(key, fmt.Sprint(value))
}
