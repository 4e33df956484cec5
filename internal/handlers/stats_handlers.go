package handlers

import (
	"net/http"
	"time"

	"teamcook_backend/internal/services"
	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service.
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// GetStockCounts handles fetching how many raw and processed ingredients
// currently have stock on hand.
func (h *StatsHandler) GetStockCounts(c *gin.Context) {
	counts, err := h.statsService.GetStockCounts()
	if err != nil {
		utils.LogError(err, "GetStockCounts: Error from statsService.GetStockCounts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stock counts.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, counts)
}

// GetStockHistory handles fetching daily purchased amounts for the last week.
func (h *StatsHandler) GetStockHistory(c *gin.Context) {
	history, err := h.statsService.GetStockHistory(time.Now())
	if err != nil {
		utils.LogError(err, "GetStockHistory: Error from statsService.GetStockHistory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stock history.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": history})
}
