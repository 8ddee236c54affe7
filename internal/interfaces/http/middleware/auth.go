package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stationery/backoffice/internal/infrastructure/auth"
	"github.com/stationery/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys and header for bearer authentication
const (
	AuthClaimsKey   = "auth_claims"
	AuthOperatorKey = "auth_operator"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// TokenValidator verifies a bearer token
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// AuthConfig configures Authenticate
type AuthConfig struct {
	Validator TokenValidator
	// SkipPaths are served without a token (exact match on the route path)
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultSkipPaths leaves the probes open
var DefaultSkipPaths = []string{"/api/v1/health", "/api/v1/health/ready"}

// Authenticate rejects requests without a valid operator token and stores the
// claims on the gin context.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if token == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := cfg.Validator.Validate(token)
		if err != nil {
			log.Debug("Rejected bearer token", zap.String("path", c.FullPath()), zap.Error(err))
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Set(AuthOperatorKey, claims.Operator)
		c.Next()
	}
}

// RequireScope allows the request only when the token grants scope.
// It must run after Authenticate; without claims the request is let through
// so deployments with authentication switched off keep working.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(AuthClaimsKey)
		if !exists {
			c.Next()
			return
		}
		claims, ok := value.(*auth.Claims)
		if !ok || !claims.HasScope(scope) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewDetailedErrorResponse(
				dto.ErrCodeForbidden,
				"Token does not grant the required scope",
				c.GetString(RequestIDKey),
				map[string]any{"required_scope": scope},
			))
			return
		}
		c.Next()
	}
}

// Operator returns the authenticated operator, or ""
func Operator(c *gin.Context) string {
	return c.GetString(AuthOperatorKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="backoffice"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeUnauthorized,
		message,
		c.GetString(RequestIDKey),
	))
}
