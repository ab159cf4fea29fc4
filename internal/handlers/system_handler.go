package handlers

import (
	"net/http"
	"time"

	"cosmosync/internal/repository"
	redisdb "cosmosync/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type SystemHandler struct {
	positionRepo repository.PositionRepository
	datasetRepo  repository.DatasetRepository
	redisClient  *redis.Client
}

func NewSystemHandler(
	positionRepo repository.PositionRepository,
	datasetRepo repository.DatasetRepository,
	redisClient *redis.Client,
) *SystemHandler {
	return &SystemHandler{
		positionRepo: positionRepo,
		datasetRepo:  datasetRepo,
		redisClient:  redisClient,
	}
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"now":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *SystemHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	positionCount, _ := h.positionRepo.Count(ctx)
	datasetCount, _ := h.datasetRepo.Count(ctx)
	redisStats, _ := redisdb.GetStats(h.redisClient)

	c.JSON(http.StatusOK, gin.H{
		"database": gin.H{
			"position_logs": positionCount,
			"dataset_items": datasetCount,
		},
		"redis": redisStats,
	})
}
