package handlers

import (
	"net/http"
	"strconv"

	"cosmosync/internal/service"
	"cosmosync/internal/utils"

	"github.com/gin-gonic/gin"
)

type PositionHandler struct {
	service service.PositionService
}

func NewPositionHandler(service service.PositionService) *PositionHandler {
	return &PositionHandler{service: service}
}

func (h *PositionHandler) GetLast(c *gin.Context) {
	ctx := c.Request.Context()

	position, err := h.service.GetLastPosition(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get last position",
			"message": err.Error(),
		})
		return
	}

	if position == nil {
		c.JSON(http.StatusOK, gin.H{"message": "no data"})
		return
	}

	c.JSON(http.StatusOK, position)
}

// TriggerFetch синхронно гоняет адаптер позиции и возвращает свежую запись.
func (h *PositionHandler) TriggerFetch(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.FetchAndStorePosition(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "position fetch failed",
			"message": err.Error(),
		})
		return
	}

	h.GetLast(c)
}

func (h *PositionHandler) GetTrend(c *gin.Context) {
	ctx := c.Request.Context()

	trend, err := h.service.GetTrend(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to compute trend",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, trend)
}

// Export выгружает последние N сэмплов в xlsx или csv.
func (h *PositionHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1000"))
	format := c.DefaultQuery("format", "csv")

	positions, err := h.service.GetLastPositions(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to load positions",
			"message": err.Error(),
		})
		return
	}

	switch format {
	case "xlsx":
		data, err := utils.PositionsXLSX(positions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed", "message": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="positions.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "csv":
		data, err := utils.PositionsCSV(positions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed", "message": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="positions.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format, use csv or xlsx"})
	}
}
