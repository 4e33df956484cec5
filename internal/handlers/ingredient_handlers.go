package handlers

import (
	"errors"
	"net/http"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/services"
	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// IngredientHandler holds the ingredient service.
type IngredientHandler struct {
	ingredientService services.IngredientService
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(is services.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: is}
}

// CreateIngredient handles the creation of a new ingredient.
func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req services.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateIngredient: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	ingredient, err := h.ingredientService.CreateIngredient(req)
	if err != nil {
		utils.LogError(err, "CreateIngredient: Error from ingredientService.CreateIngredient")
		if errors.Is(err, services.ErrIngredientNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Ingredient name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid ingredient data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create ingredient.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

// GetIngredients handles fetching ingredients with an optional kind filter.
func (h *IngredientHandler) GetIngredients(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	var kind *string
	if kindStr := c.Query("kind"); kindStr != "" {
		kind = &kindStr
	}

	ingredients, totalCount, err := h.ingredientService.GetIngredients(kind, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetIngredients: Error from ingredientService.GetIngredients")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid kind filter.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch ingredients.", "Internal error"))
		}
		return
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	respondPaginated(c, ingredients, totalCount, page, pageSize)
}

// GetIngredientByID handles fetching a single ingredient.
func (h *IngredientHandler) GetIngredientByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.GetIngredientByID(id)
	if err != nil {
		utils.LogError(err, "GetIngredientByID: Error from ingredientService.GetIngredientByID for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrIngredientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ingredient not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch ingredient.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// UpdateIngredient handles updating an ingredient.
func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateIngredient: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	ingredient, err := h.ingredientService.UpdateIngredient(id, req)
	if err != nil {
		utils.LogError(err, "UpdateIngredient: Error from ingredientService.UpdateIngredient for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrIngredientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ingredient not found.", err.Error()))
		} else if errors.Is(err, services.ErrIngredientNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Ingredient name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid ingredient data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update ingredient.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// DeleteIngredient handles deleting an ingredient.
func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ingredientService.DeleteIngredient(id); err != nil {
		utils.LogError(err, "DeleteIngredient: Error from ingredientService.DeleteIngredient for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrIngredientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ingredient not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete ingredient.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted successfully"})
}
