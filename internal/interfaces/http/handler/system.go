package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stationery/backoffice/internal/interfaces/http/dto"
	"github.com/stationery/backoffice/internal/interfaces/http/middleware"
)

// Pinger checks a backing dependency
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves liveness and readiness probes
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	db        Pinger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string, db Pinger) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		db:        db,
	}
}

// HealthResponse is the probe payload
type HealthResponse struct {
	Status    string            `json:"status"`
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	GoVersion string            `json:"go_version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (h *SystemHandler) health(status string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
}

// Health godoc
// @ID           getHealth
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      500 {object} dto.Response
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, h.health("ok"))
}

// Ready godoc
// @ID           getReadiness
// @Summary      Readiness probe
// @Description  Fails with 503 when the database is unreachable
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response
// @Router       /health/ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := h.health("ok")
	resp.Checks = map[string]string{"database": "ok"}
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			resp.Status = "unavailable"
			resp.Checks["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp, Error: &dto.ErrorInfo{
				Code:      dto.ErrCodeUnavailable,
				Message:   "Database is unreachable",
				RequestID: middleware.GetRequestID(c),
			}})
			return
		}
	}
	h.Success(c, resp)
}
