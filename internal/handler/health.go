package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/contacts-service/internal/middleware"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/deppfellow/contacts-service/internal/service"
	"github.com/labstack/echo/v4"
)

// healthCheckTimeout bounds each dependency check.
const healthCheckTimeout = 5 * time.Second

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	contacts *service.ContactService
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server, contacts *service.ContactService) *HealthHandler {
	return &HealthHandler{
		Handler:  NewHandler(s),
		contacts: contacts,
	}
}

// CheckHealth reports overall status plus a "repository" sub-check.
//
// It returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	// ---------------- Repository check ---------------------------------------
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	repoStart := time.Now()

	if err := h.contacts.Ping(ctx); err != nil {
		checks["repository"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(repoStart).String(),
			"error":         err.Error(),
		}

		isHealthy = false

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(repoStart)).
			Msg("repository health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":       "repository",
			"operation":        "health_check",
			"error_type":       "repository_unhealthy",
			"response_time_ms": time.Since(repoStart).Milliseconds(),
			"error_message":    err.Error(),
		})
	} else {
		checks["repository"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(repoStart).String(),
			"contacts":      h.contacts.Count(),
		}

		logger.Debug().
			Dur("response_time", time.Since(repoStart)).
			Msg("repository health check passed")
	}

	// ---------------- Overall status + response ------------------------------
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
