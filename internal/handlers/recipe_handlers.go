package handlers

import (
	"errors"
	"net/http"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/services"
	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RecipeHandler holds the recipe service.
type RecipeHandler struct {
	recipeService services.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(rs services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: rs}
}

// CreateRecipe handles the creation of a new recipe with its ingredients and steps.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req services.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateRecipe: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	recipe, err := h.recipeService.CreateRecipe(req)
	if err != nil {
		utils.LogError(err, "CreateRecipe: Error from recipeService.CreateRecipe")
		if errors.Is(err, services.ErrRecipeNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Recipe name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrIngredientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "One or more ingredients not found.", err.Error()))
		} else if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid recipe data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create recipe.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// GetRecipes handles fetching recipes with optional kind and restaurant filters.
func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	var kind *string
	if kindStr := c.Query("kind"); kindStr != "" {
		kind = &kindStr
	}
	restaurantID, ok := parseOptionalIDQuery(c, "restaurant_id")
	if !ok {
		return
	}

	recipes, totalCount, err := h.recipeService.GetRecipes(kind, restaurantID, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetRecipes: Error from recipeService.GetRecipes")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid kind filter.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch recipes.", "Internal error"))
		}
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	respondPaginated(c, recipes, totalCount, page, pageSize)
}

// GetRecipeByID handles fetching a single recipe with its ingredients and steps.
func (h *RecipeHandler) GetRecipeByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipeByID(id)
	if err != nil {
		utils.LogError(err, "GetRecipeByID: Error from recipeService.GetRecipeByID for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrRecipeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Recipe not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch recipe.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe handles updating a recipe and replacing its child lists.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateRecipe: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(id, req)
	if err != nil {
		utils.LogError(err, "UpdateRecipe: Error from recipeService.UpdateRecipe for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrRecipeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Recipe not found.", err.Error()))
		} else if errors.Is(err, services.ErrRecipeNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Recipe name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrIngredientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "One or more ingredients not found.", err.Error()))
		} else if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid recipe data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update recipe.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe handles deleting a recipe and its child rows.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(id); err != nil {
		utils.LogError(err, "DeleteRecipe: Error from recipeService.DeleteRecipe for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrRecipeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Recipe not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete recipe.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe and its items deleted successfully"})
}
