package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chislo/manuscripthub/internal/middleware"
	"github.com/chislo/manuscripthub/internal/server"
)

// HealthHandler serves the /status endpoint monitors and the launcher
// use to verify an app is up.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports app status plus dataset and analytics checks.
// The dataset is loaded at startup, so its check only confirms it is
// non-empty; the analytics check pings SQLite.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"app":         h.server.App.Name,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	if n := h.server.Journals.Len(); n > 0 {
		checks["journals"] = map[string]interface{}{
			"status": "healthy",
			"count":  n,
		}
	} else {
		checks["journals"] = map[string]interface{}{
			"status": "unhealthy",
			"error":  "journal dataset is empty",
		}
		isHealthy = false
	}

	if h.server.Analytics != nil {
		analyticsStart := time.Now()
		if _, err := h.server.Analytics.Summary(c.Request().Context()); err != nil {
			checks["analytics"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(analyticsStart).String(),
				"error":         err.Error(),
			}
			// Analytics is best-effort; an unhealthy event store does
			// not fail the app.
			logger.Error().Err(err).Msg("analytics health check failed")
		} else {
			checks["analytics"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(analyticsStart).String(),
			}
		}
	}

	checks["ai"] = map[string]interface{}{
		"configured": h.server.Config.Gemini.APIKey != "",
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}
