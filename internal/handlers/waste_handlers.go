package handlers

import (
	"errors"
	"net/http"
	"time"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/services"
	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// WasteHandler holds the waste service and the expiry reaper.
type WasteHandler struct {
	wasteService  services.WasteService
	reaperService services.ReaperService
}

// NewWasteHandler creates a new WasteHandler.
func NewWasteHandler(ws services.WasteService, rs services.ReaperService) *WasteHandler {
	return &WasteHandler{wasteService: ws, reaperService: rs}
}

// RecordWaste handles recording manual spoilage against a stock lot.
func (h *WasteHandler) RecordWaste(c *gin.Context) {
	var req services.CreateWasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RecordWaste: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	waste, err := h.wasteService.RecordWaste(req)
	if err != nil {
		utils.LogError(err, "RecordWaste: Error from wasteService.RecordWaste")
		if errors.Is(err, services.ErrStockLotNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Stock lot not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid waste data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record waste.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, waste)
}

// GetWaste handles fetching the waste audit log, newest first.
func (h *WasteHandler) GetWaste(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	waste, totalCount, err := h.wasteService.GetWaste(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetWaste: Error from wasteService.GetWaste")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch waste records.", "Internal error"))
		return
	}
	if waste == nil {
		waste = []models.Waste{}
	}
	respondPaginated(c, waste, totalCount, page, pageSize)
}

// SweepExpired handles an on-demand expiry sweep, the same one the
// background reaper runs on its ticker.
func (h *WasteHandler) SweepExpired(c *gin.Context) {
	reaped, err := h.reaperService.SweepExpired(time.Now())
	if err != nil {
		utils.LogError(err, "SweepExpired: Error from reaperService.SweepExpired")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to sweep expired stock.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Expired stock swept",
		"reaped":  reaped,
	})
}
