// Package middleware holds the gin middleware of the back-office API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stationery/backoffice/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// TracingWithConfig starts a server span per request through otelgin
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// TracingAttributeInjector tags the server span with the request ID and
// Idempotency-Key. Install it after TracingWithConfig, RequestID and IdempotencyKey.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			var attrs []attribute.KeyValue
			if id := GetRequestID(c); id != "" {
				attrs = append(attrs, attribute.String("request_id", id))
			}
			if key := logger.GetIdempotencyKey(c.Request.Context()); key != "" {
				attrs = append(attrs, attribute.String("idempotency_key", key))
			}
			span.SetAttributes(attrs...)
		}
		c.Next()
	}
}

// SpanErrorMarker fails the span on 5xx and records the status of any 4xx.
// Rejected payouts are client errors and leave the span unset.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		span := trace.SpanFromContext(c.Request.Context())
		if status < http.StatusBadRequest || !span.IsRecording() {
			return
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.String("gin.errors", c.Errors.String()))
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
