package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stationery/backoffice/internal/infrastructure/logger"
	"github.com/stationery/backoffice/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// EngineConfig selects the global middleware chain
type EngineConfig struct {
	Mode           string
	ServiceName    string
	TracingEnabled bool
	// Meter receives HTTP metrics; nil disables them
	Meter          metric.Meter
	MaxBodySize    int64
	CORS           middleware.CORSConfig
	TrustedProxies []string
	// Profiling labels request samples with their route
	Profiling bool
	// RateLimiter throttles per client IP; nil disables throttling
	RateLimiter *middleware.RateLimiter
	// Authenticator runs last; nil leaves the API open
	Authenticator gin.HandlerFunc
}

// NewEngine builds a gin engine with request IDs, tracing, metrics, logging,
// recovery and the security headers installed, in that order.
func NewEngine(cfg EngineConfig, log *zap.Logger) (*gin.Engine, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	middleware.SetupValidator()

	engine.Use(
		middleware.RequestID(),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     cfg.TracingEnabled,
		}),
		middleware.IdempotencyKey(),
		middleware.TracingAttributeInjector(),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(cfg.Meter),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(cfg.CORS),
	)
	if cfg.Profiling {
		engine.Use(middleware.Profiling("/api/v1/health"))
	}
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	if cfg.Authenticator != nil {
		engine.Use(cfg.Authenticator)
	}
	return engine, nil
}
