package handlers

import (
	"errors"
	"net/http"

	"cosmosync/internal/service"

	"github.com/gin-gonic/gin"
)

type SpaceHandler struct {
	service service.SpaceCacheService
}

func NewSpaceHandler(service service.SpaceCacheService) *SpaceHandler {
	return &SpaceHandler{service: service}
}

func (h *SpaceHandler) GetLatest(c *gin.Context) {
	ctx := c.Request.Context()
	source := c.Param("source")

	cache, err := h.service.GetLatest(ctx, source)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSource) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "unknown source",
				"sources": service.CacheSources,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get latest cache",
			"message": err.Error(),
		})
		return
	}

	if cache == nil {
		c.JSON(http.StatusOK, gin.H{"message": "no data"})
		return
	}

	c.JSON(http.StatusOK, cache)
}

// Refresh гоняет все кэшируемые адаптеры по одному разу.
func (h *SpaceHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{"refreshed": h.service.RefreshAll(ctx)})
}

func (h *SpaceHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.service.GetSummary(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get summary",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sources": summary})
}
