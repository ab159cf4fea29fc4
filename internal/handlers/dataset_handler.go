package handlers

import (
	"net/http"
	"strconv"

	"cosmosync/internal/service"

	"github.com/gin-gonic/gin"
)

type DatasetHandler struct {
	service service.DatasetService
}

func NewDatasetHandler(service service.DatasetService) *DatasetHandler {
	return &DatasetHandler{service: service}
}

func (h *DatasetHandler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	written, err := h.service.SyncCatalog(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "dataset sync failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"written": written})
}

func (h *DatasetHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	sortBy := c.Query("sort_by")
	order := c.Query("order")

	items, err := h.service.ListItems(ctx, limit, sortBy, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to list dataset items",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
