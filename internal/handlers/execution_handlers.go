package handlers

import (
	"errors"
	"net/http"

	"teamcook_backend/internal/services"
	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ExecutionHandler holds the execution service and the stock allocator.
type ExecutionHandler struct {
	executionService services.ExecutionService
	allocator        services.StockAllocator
}

// NewExecutionHandler creates a new ExecutionHandler.
func NewExecutionHandler(es services.ExecutionService, allocator services.StockAllocator) *ExecutionHandler {
	return &ExecutionHandler{executionService: es, allocator: allocator}
}

// respondExecutionError maps execution/allocation failures onto HTTP status codes.
func respondExecutionError(c *gin.Context, err error, action string) {
	if errors.Is(err, services.ErrRecipeNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Recipe not found.", err.Error()))
	} else if errors.Is(err, services.ErrInvalidRecipeKind) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Recipe kind does not allow this operation.", err.Error()))
	} else if errors.Is(err, services.ErrInsufficientStock) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Insufficient stock for one or more ingredients.", err.Error()))
	} else if errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request data.", err.Error()))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

// ExecuteProcessedRecipe handles cooking a processed recipe: consumes raw
// stock and produces a new stock lot of the processed ingredient.
func (h *ExecutionHandler) ExecuteProcessedRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req services.ExecuteProcessedRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ExecuteProcessedRecipe: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	req.RecipeID = recipeID

	lotID, err := h.executionService.ExecuteProcessedRecipe(req)
	if err != nil {
		utils.LogError(err, "ExecuteProcessedRecipe: Error from executionService.ExecuteProcessedRecipe")
		respondExecutionError(c, err, "execute processed recipe")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Recipe executed, output added to stock",
		"stock_lot_id": lotID,
	})
}

// ExecuteFullRecipe handles preparing and selling a full recipe: consumes
// stock and records a sale.
func (h *ExecutionHandler) ExecuteFullRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req services.ExecuteFullRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ExecuteFullRecipe: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	req.RecipeID = recipeID

	saleID, err := h.executionService.ExecuteFullRecipe(req)
	if err != nil {
		utils.LogError(err, "ExecuteFullRecipe: Error from executionService.ExecuteFullRecipe")
		respondExecutionError(c, err, "execute full recipe")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe executed and sale recorded",
		"sale_id": saleID,
	})
}

// AllocateRequest is the payload for a standalone stock allocation.
type AllocateRequest struct {
	IngredientID   int64   `json:"ingredient_id" binding:"required"`
	RequiredAmount float64 `json:"required_amount" binding:"required,gt=0"`
}

// Allocate handles a standalone FIFO allocation against one ingredient's stock.
func (h *ExecutionHandler) Allocate(c *gin.Context) {
	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Allocate: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	lines, err := h.allocator.Allocate(req.IngredientID, req.RequiredAmount)
	if err != nil {
		utils.LogError(err, "Allocate: Error from allocator.Allocate")
		respondExecutionError(c, err, "allocate stock")
		return
	}

	var totalCost float64
	for _, line := range lines {
		totalCost += line.ChargedCost
	}
	c.JSON(http.StatusOK, gin.H{
		"allocations": lines,
		"total_cost":  totalCost,
	})
}
