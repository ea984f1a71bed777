package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/service"
	"github.com/Payphone-Digital/carrental/pkg/database"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	db    *gorm.DB
	cache *service.CacheService
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func NewHealthHandler(db *gorm.DB, cache *service.CacheService) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// HealthCheck reports database and cache health. Only the database decides
// the overall status.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   constants.AppVersion,
		Timestamp: time.Now(),
		Checks:    make(map[string]HealthCheck),
	}

	dbStatus := h.checkDatabase(ctx)
	response.Checks["database"] = dbStatus
	if dbStatus.Status != "healthy" {
		response.Status = "unhealthy"
	}

	if h.cache != nil {
		cacheStatus := h.cache.Health(ctx)
		status, _ := cacheStatus["status"].(string)
		response.Checks["cache"] = HealthCheck{Status: status, Details: cacheStatus}
	}

	statusCode := http.StatusOK
	if response.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) HealthCheck {
	if h.db == nil {
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Database connection not initialized",
		}
	}

	stats, err := database.Ping(ctx, h.db)
	if err != nil {
		logger.GetLogger().Error("Database ping failed", zap.Error(err))
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Database ping failed",
		}
	}

	return HealthCheck{
		Status:  "healthy",
		Details: stats,
	}
}
