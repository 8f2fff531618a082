package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 3 * time.Second

const (
	healthOK    = "OK"
	healthError = "ERROR"
)

// HealthCheck probes one dependency. A failing Critical check turns the
// detailed health report into a 503.
type HealthCheck struct {
	Name     string
	Critical bool
	Ping     func(ctx context.Context) error
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    healthOK,
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Seconds(),
		"message":   "Service is healthy",
	})
}

func (h *handlerImpl) HandleDetailedHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := healthOK
	checks := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn().
				Err(err).
				Str("check", check.Name).
				Msg("health check failed")
			checks[check.Name] = healthError
			if check.Critical {
				status = healthError
			}
			continue
		}
		checks[check.Name] = healthOK
	}

	code := http.StatusOK
	if status != healthOK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"success":   status == healthOK,
		"status":    status,
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Seconds(),
		"checks":    checks,
	})
}

func (h *handlerImpl) HandlePing(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
