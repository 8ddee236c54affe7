package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ginLoggerKey is where GinMiddleware stores the request-scoped logger on the gin context
const ginLoggerKey = "logger"

// GinMiddleware writes one access-log line per request and puts a logger
// tagged with the request ID on the request context. Install it after the
// request ID middleware.
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		ctx, reqLogger := WithRequestID(req.Context(),
			logger.With(zap.String("method", req.Method), zap.String("path", req.URL.Path)),
			c.GetString("request_id"))
		c.Request = req.WithContext(ctx)
		c.Set(ginLoggerKey, reqLogger)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if route := c.FullPath(); route != "" {
			fields = append(fields, zap.String("route", route))
		}
		if q := req.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}
		reqLogger.Log(accessLevel(status), "HTTP Request", fields...)
	}
}

func accessLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

// Recovery logs a handler panic with its stack and answers with the
// INTERNAL_ERROR envelope instead of dropping the connection.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestID := c.GetString("request_id")
			logger.Error("Panic recovered",
				zap.String("request_id", requestID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Any("panic", rec),
				zap.Stack("stacktrace"),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":       "INTERNAL_ERROR",
					"message":    "An internal error occurred",
					"request_id": requestID,
				},
			})
		}()
		c.Next()
	}
}

// GetGinLogger returns the logger GinMiddleware attached, or a no-op logger
func GetGinLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Value(ginLoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
