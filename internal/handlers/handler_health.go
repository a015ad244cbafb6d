package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/SscSPs/monetra/internal/middleware"
	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck pings one backing dependency.
type HealthCheck func(ctx context.Context) error

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func registerHealthRoutes(r *gin.Engine, checks map[string]HealthCheck) {
	r.GET("/health", getHealth(checks))
}

// getHealth godoc
// @Summary Show the status of server.
// @Description Reports OK when every backing dependency answers its ping.
// @Tags root
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func getHealth(checks map[string]HealthCheck) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		resp := HealthResponse{Status: "OK"}
		status := http.StatusOK
		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.Warn("Health check failed", slog.String("dependency", name), slog.String("error", err.Error()))
				resp.Checks[name] = "DOWN"
				resp.Status = "DEGRADED"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "UP"
		}

		c.JSON(status, resp)
	}
}
