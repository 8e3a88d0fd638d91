package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/weather-widget/internal/server/utils"
)

const readinessTimeout = 2 * time.Second

// Pinger is the storage dependency checked by Readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	logger    *zap.Logger
	storage   Pinger
	startTime time.Time
}

func NewHealthHandler(logger *zap.Logger, storage Pinger) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		storage:   storage,
		startTime: time.Now(),
	}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "alive",
		Uptime: time.Since(h.startTime).String(),
	})
}

// Readiness fails while the search history storage is unreachable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(utils.GetContextFromGinContext(c), readinessTimeout)
		defer cancel()

		if err := h.storage.Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed",
				zap.String("request_id", utils.GetRequestIDFromGinContext(c)),
				zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Status: "unavailable",
				Uptime: time.Since(h.startTime).String(),
				Error:  err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status: "ready",
		Uptime: time.Since(h.startTime).String(),
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
