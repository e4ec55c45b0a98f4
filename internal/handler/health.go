package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
)

const defaultHealthCheckTimeout = 5 * time.Second

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type dependencyCheck struct {
	name  string
	check func(ctx context.Context) error
}

// dependencyChecks lists the configured checks whose dependency exists.
func (h *HealthHandler) dependencyChecks() []dependencyCheck {
	cfg := h.server.Config.Observability
	var checks []dependencyCheck

	if cfg.HealthCheckEnabled("database") && h.server.DB != nil {
		checks = append(checks, dependencyCheck{"database", func(ctx context.Context) error {
			return h.server.DB.Pool.Ping(ctx)
		}})
	}

	if cfg.HealthCheckEnabled("redis") && h.server.Redis != nil {
		checks = append(checks, dependencyCheck{"redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}})
	}

	return checks
}

// CheckHealth answers 200 when every enabled dependency responds and 503
// otherwise. Each check reports its status and response time.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	timeout := h.server.Config.Observability.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = defaultHealthCheckTimeout
	}

	checks := make(map[string]any)
	isHealthy := true

	for _, dep := range h.dependencyChecks() {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		checkStart := time.Now()
		err := dep.check(ctx)
		cancel()

		result := map[string]any{
			"status":        "healthy",
			"response_time": time.Since(checkStart).String(),
		}

		if err != nil {
			isHealthy = false
			result["status"] = "unhealthy"
			result["error"] = err.Error()

			logger.Error().
				Err(err).
				Str("check", dep.name).
				Dur("response_time", time.Since(checkStart)).
				Msg("health check failed")

			h.recordFailure(dep.name, time.Since(checkStart), err)
		}

		checks[dep.name] = result
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	status := http.StatusOK
	if !isHealthy {
		response["status"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	logger.Debug().
		Bool("healthy", isHealthy).
		Dur("total_duration", time.Since(start)).
		Msg("health check completed")

	return c.JSON(status, response)
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
