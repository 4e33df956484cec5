package handlers

import (
	"net/http"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/services"
	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// GetSales handles fetching the sales ledger with optional recipe and
// restaurant filters. Sales are created only through full recipe execution.
func (h *SaleHandler) GetSales(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	recipeID, ok := parseOptionalIDQuery(c, "recipe_id")
	if !ok {
		return
	}
	restaurantID, ok := parseOptionalIDQuery(c, "restaurant_id")
	if !ok {
		return
	}

	filters := models.SaleFilters{
		RecipeID:     recipeID,
		RestaurantID: restaurantID,
		Page:         page,
		PageSize:     pageSize,
	}
	sales, totalCount, err := h.saleService.GetSales(filters)
	if err != nil {
		utils.LogError(err, "GetSales: Error from saleService.GetSales")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch sales.", "Internal error"))
		return
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	respondPaginated(c, sales, totalCount, page, pageSize)
}
