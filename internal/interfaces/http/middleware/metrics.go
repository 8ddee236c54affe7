package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric"
)

var sizeBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000}

type httpMetrics struct {
	requests     *telemetry.Counter
	duration     *telemetry.Histogram
	requestSize  *telemetry.Histogram
	responseSize *telemetry.Histogram
	inFlight     metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	m := &httpMetrics{}
	var err error
	if m.requests, err = telemetry.NewCounter(meter, "http_server_request_total", "HTTP requests served", "{request}"); err != nil {
		return nil, err
	}
	histograms := []struct {
		dst  **telemetry.Histogram
		opts telemetry.HistogramOpts
	}{
		{&m.duration, telemetry.HistogramOpts{Name: "http_server_request_duration_seconds", Description: "HTTP request latency", Unit: "s", Boundaries: telemetry.HTTPDurationBuckets}},
		{&m.requestSize, telemetry.HistogramOpts{Name: "http_server_request_size_bytes", Description: "HTTP request body size", Unit: "By", Boundaries: sizeBuckets}},
		{&m.responseSize, telemetry.HistogramOpts{Name: "http_server_response_size_bytes", Description: "HTTP response body size", Unit: "By", Boundaries: sizeBuckets}},
	}
	for _, h := range histograms {
		if *h.dst, err = telemetry.NewHistogram(meter, h.opts); err != nil {
			return nil, err
		}
	}
	m.inFlight, err = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("HTTP requests in progress"), metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// HTTPMetrics counts and times requests by method and route pattern, never by
// raw path, so investor IDs do not explode cardinality. Without a meter, or if
// the instruments cannot be created, it does nothing.
func HTTPMetrics(meter metric.Meter) gin.HandlerFunc {
	var m *httpMetrics
	if meter != nil {
		m, _ = newHTTPMetrics(meter)
	}
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.inFlight.Add(ctx, 1)
		c.Next()
		m.inFlight.Add(ctx, -1)

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := telemetry.AttrHTTPMethod.String(c.Request.Method)
		path := telemetry.AttrHTTPRoute.String(route)

		m.requests.Inc(ctx, method, path, telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()))
		m.duration.RecordDuration(ctx, time.Since(start), method, path)
		if n := c.Request.ContentLength; n > 0 {
			m.requestSize.Record(ctx, float64(n), method, path)
		}
		if n := c.Writer.Size(); n > 0 {
			m.responseSize.Record(ctx, float64(n), method, path)
		}
	}
}
