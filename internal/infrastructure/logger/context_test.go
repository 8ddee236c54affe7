package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	log := zap.NewExample()
	assert.Same(t, log, FromContext(WithContext(context.Background(), log)))
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	ctx, log := WithRequestID(context.Background(), zap.New(core), "req-1")
	log.Info("hello")
	FromContext(ctx).Info("again")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	require.Equal(t, 2, logs.Len())
	for _, e := range logs.All() {
		assert.Equal(t, "req-1", e.ContextMap()["request_id"])
	}
}

func TestGetters_Empty(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetIdempotencyKey(ctx))
}

func TestL_AddsTraceAndIdempotencyKey(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithIdempotencyKey(ctx, "payout-42")
	ctx, span := tp.Tracer("test").Start(ctx, "payout")
	defer span.End()

	L(ctx).Info("payout recorded")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	assert.Equal(t, "payout-42", fields["idempotency_key"])
}

func TestL_NoSpan(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))

	L(ctx).Info("plain")

	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "trace_id")
	assert.NotContains(t, fields, "idempotency_key")
}
