package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
)

// Profiling labels profile samples with the matched route and method so
// allocation and payout endpoints can be told apart in the profiler UI.
// Paths with any of skipPrefixes are left unlabeled.
func Profiling(skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}
		labels := map[string]string{
			telemetry.ProfilingLabelMethod: c.Request.Method,
			telemetry.ProfilingLabelRoute:  c.FullPath(),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
