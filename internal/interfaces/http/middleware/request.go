package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/infrastructure/logger"
	"github.com/stationery/backoffice/internal/interfaces/http/dto"
)

// Header and context keys shared by the middleware and handlers
const (
	RequestIDHeader      = "X-Request-ID"
	RequestIDKey         = "request_id"
	IdempotencyKeyHeader = "Idempotency-Key"
	// MaxRequestIDLength caps client-supplied request IDs
	MaxRequestIDLength = 128
	// MaxIdempotencyKeyLength caps client-supplied idempotency keys
	MaxIdempotencyKeyLength = 255
)

// RequestID tags each request with the client's X-Request-ID, or a new UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		switch {
		case id == "":
			id = uuid.NewString()
		case len(id) > MaxRequestIDLength:
			id = id[:MaxRequestIDLength]
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// IdempotencyKey copies the Idempotency-Key header into the request context so
// services and log lines can see it. Oversized keys are rejected.
func IdempotencyKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewDetailedErrorResponse(
				dto.ErrCodeInvalidInput,
				"Idempotency-Key header is too long",
				c.GetString(RequestIDKey),
				map[string]any{"max_length": MaxIdempotencyKeyLength},
			))
			return
		}
		c.Request = c.Request.WithContext(logger.WithIdempotencyKey(c.Request.Context(), key))
		c.Next()
	}
}
