package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestHTTPMetrics_RecordsByRoutePattern(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(t.Context()) })

	router := gin.New()
	router.Use(HTTPMetrics(mp.Meter("test")))
	router.GET("/investors/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, id := range []string{"a", "b", "c"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/investors/"+id, nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))

	total := findMetric(rm, "http_server_request_total")
	require.NotNil(t, total)
	sum, ok := total.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	byRoute := map[string]int64{}
	for _, dp := range sum.DataPoints {
		route, _ := dp.Attributes.Value("http.route")
		byRoute[route.AsString()] += dp.Value
	}
	assert.Equal(t, int64(3), byRoute["/investors/:id"])
	assert.Equal(t, int64(1), byRoute["unknown"])

	assert.NotNil(t, findMetric(rm, "http_server_request_duration_seconds"))
	assert.NotNil(t, findMetric(rm, "http_server_response_size_bytes"))
}

func TestHTTPMetrics_NilMeter(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(nil))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
