package handlers

import (
	"errors"
	"net/http"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/services"
	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// EventHandler holds the event service.
type EventHandler struct {
	eventService services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(es services.EventService) *EventHandler {
	return &EventHandler{eventService: es}
}

// CreateEvent handles scheduling a new kitchen event.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateEvent: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	event, err := h.eventService.CreateEvent(req)
	if err != nil {
		utils.LogError(err, "CreateEvent: Error from eventService.CreateEvent")
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid event data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create event.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, event)
}

// GetEvents handles fetching events with an optional restaurant filter.
func (h *EventHandler) GetEvents(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	restaurantID, ok := parseOptionalIDQuery(c, "restaurant_id")
	if !ok {
		return
	}

	events, totalCount, err := h.eventService.GetEvents(restaurantID, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetEvents: Error from eventService.GetEvents")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch events.", "Internal error"))
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	respondPaginated(c, events, totalCount, page, pageSize)
}

// GetEventByID handles fetching a single event.
func (h *EventHandler) GetEventByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	event, err := h.eventService.GetEventByID(id)
	if err != nil {
		utils.LogError(err, "GetEventByID: Error from eventService.GetEventByID for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Event not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch event.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent handles updating an event.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateEvent: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	event, err := h.eventService.UpdateEvent(id, req)
	if err != nil {
		utils.LogError(err, "UpdateEvent: Error from eventService.UpdateEvent for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Event not found.", err.Error()))
		} else if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid event data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update event.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent handles deleting an event.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(id); err != nil {
		utils.LogError(err, "DeleteEvent: Error from eventService.DeleteEvent for ID "+utils.Int64ToStr(id))
		if errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Event not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete event.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
