package handler

import (
	"context"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	cache *services.ProgressCache
}

func NewHealthHandler(cache *services.ProgressCache) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// GetHealth reports process and dependency health. The cache is optional
// infrastructure, so a disconnected cache degrades the report without
// failing it.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	mongoStatus := "up"
	if utils.MongoClient == nil {
		mongoStatus = "down"
	} else if err := utils.MongoClient.Ping(ctx, nil); err != nil {
		mongoStatus = "down"
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		if h.cache.IsConnected() {
			cacheStatus = "up"
		} else {
			cacheStatus = "down"
		}
	}

	status := "ok"
	if mongoStatus == "down" {
		status = "degraded"
	}

	mongoMetrics := utils.GetMongoMetrics()
	utils.Success(c, gin.H{
		"status":    status,
		"mongo":     mongoStatus,
		"cache":     cacheStatus,
		"cpu_usage": utils.GetCPUUsage(),
		"mongo_metrics": gin.H{
			"active_connections": mongoMetrics.ActiveConnections,
			"cas_conflicts":      mongoMetrics.CASConflicts,
			"cas_retries":        mongoMetrics.CASRetries,
		},
	})
}
