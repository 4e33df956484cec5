package handlers

import (
	"errors"
	"net/http"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/services"
	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StockHandler holds the stock service.
type StockHandler struct {
	stockService services.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(ss services.StockService) *StockHandler {
	return &StockHandler{stockService: ss}
}

// CreateStockLot handles registering a purchased stock lot.
func (h *StockHandler) CreateStockLot(c *gin.Context) {
	var req services.CreateStockLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateStockLot: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	lot, err := h.stockService.CreateLot(req)
	if err != nil {
		utils.LogError(err, "CreateStockLot: Error from stockService.CreateLot")
		if errors.Is(err, services.ErrIngredientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ingredient not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid stock lot data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create stock lot.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, lot)
}

// GetStockLots handles fetching stock lots with an optional ingredient filter.
func (h *StockHandler) GetStockLots(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	ingredientID, ok := parseOptionalIDQuery(c, "ingredient_id")
	if !ok {
		return
	}

	filters := models.StockFilters{
		IngredientID: ingredientID,
		Page:         page,
		PageSize:     pageSize,
	}
	lots, totalCount, err := h.stockService.GetLots(filters)
	if err != nil {
		utils.LogError(err, "GetStockLots: Error from stockService.GetLots")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stock lots.", "Internal error"))
		return
	}
	if lots == nil {
		lots = []models.StockLot{}
	}
	respondPaginated(c, lots, totalCount, page, pageSize)
}

// GetStockLotByID handles fetching a single stock lot.
func (h *StockHandler) GetStockLotByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	lot, err := h.stockService.GetLotByID(id)
	if err != nil {
		utils.LogError(err, "GetStockLotByID: Error from stockService.GetLotByID for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrStockLotNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Stock lot not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stock lot.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, lot)
}

// UpdateStockLot handles correcting a stock lot record.
func (h *StockHandler) UpdateStockLot(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateStockLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateStockLot: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	lot, err := h.stockService.UpdateLot(id, req)
	if err != nil {
		utils.LogError(err, "UpdateStockLot: Error from stockService.UpdateLot for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrStockLotNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Stock lot not found.", err.Error()))
		} else if errors.Is(err, services.ErrIngredientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ingredient not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid stock lot data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update stock lot.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, lot)
}

// DeleteStockLot handles removing a stock lot.
func (h *StockHandler) DeleteStockLot(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.stockService.DeleteLot(id); err != nil {
		utils.LogError(err, "DeleteStockLot: Error from stockService.DeleteLot for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrStockLotNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Stock lot not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete stock lot.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock lot deleted successfully"})
}
