package handlers

import (
	"errors"
	"net/http"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/services"
	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler holds the restaurant service.
type RestaurantHandler struct {
	restaurantService services.RestaurantService
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(rs services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: rs}
}

// CreateRestaurant handles the creation of a new restaurant.
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req services.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateRestaurant: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	restaurant, err := h.restaurantService.CreateRestaurant(req)
	if err != nil {
		utils.LogError(err, "CreateRestaurant: Error from restaurantService.CreateRestaurant")
		if errors.Is(err, services.ErrRestaurantNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Restaurant name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

// GetRestaurants handles fetching all restaurants.
func (h *RestaurantHandler) GetRestaurants(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	restaurants, totalCount, err := h.restaurantService.GetRestaurants(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetRestaurants: Error from restaurantService.GetRestaurants")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch restaurants.", "Internal error"))
		return
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	respondPaginated(c, restaurants, totalCount, page, pageSize)
}

// GetRestaurantByID handles fetching a single restaurant.
func (h *RestaurantHandler) GetRestaurantByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	restaurant, err := h.restaurantService.GetRestaurantByID(id)
	if err != nil {
		utils.LogError(err, "GetRestaurantByID: Error from restaurantService.GetRestaurantByID for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// UpdateRestaurant handles updating a restaurant.
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateRestaurant: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(id, req)
	if err != nil {
		utils.LogError(err, "UpdateRestaurant: Error from restaurantService.UpdateRestaurant for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else if errors.Is(err, services.ErrRestaurantNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Restaurant name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// DeleteRestaurant handles deleting a restaurant.
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.restaurantService.DeleteRestaurant(id); err != nil {
		utils.LogError(err, "DeleteRestaurant: Error from restaurantService.DeleteRestaurant for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}
