package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
)

// Custom Errors
var (
	ErrEventNotFound = errors.New("event not found")
)

// --- DTOs ---

// CreateEventRequest is used for scheduling a new kitchen event.
type CreateEventRequest struct {
	Name         string    `json:"name" binding:"required"`
	Time         time.Time `json:"time" binding:"required"`
	CreatedByID  *int64    `json:"created_by_id"`
	RestaurantID *int64    `json:"restaurant_id"`
}

// UpdateEventRequest is used for updating an event.
type UpdateEventRequest struct {
	Name         *string    `json:"name"`
	Time         *time.Time `json:"time"`
	CreatedByID  *int64     `json:"created_by_id"`
	RestaurantID *int64     `json:"restaurant_id"`
}

// --- EventService Interface ---
type EventService interface {
	CreateEvent(req CreateEventRequest) (*models.Event, error)
	GetEventByID(id int64) (*models.Event, error)
	GetEvents(restaurantID *int64, page, pageSize int) ([]models.Event, int, error)
	UpdateEvent(id int64, req UpdateEventRequest) (*models.Event, error)
	DeleteEvent(id int64) error
}

// --- eventService Implementation ---
type eventService struct {
	eventRepo      repositories.EventRepository
	restaurantRepo repositories.RestaurantRepository
	userRepo       repositories.UserRepository
	db             *sql.DB
}

// NewEventService creates a new instance of EventService.
func NewEventService(
	eventRepo repositories.EventRepository,
	restaurantRepo repositories.RestaurantRepository,
	userRepo repositories.UserRepository,
	db *sql.DB,
) EventService {
	return &eventService{
		eventRepo:      eventRepo,
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		db:             db,
	}
}

func (s *eventService) verifyReferences(createdByID, restaurantID *int64) error {
	if createdByID != nil {
		if _, err := s.userRepo.GetUserByID(*createdByID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: user ID %d", ErrUserNotFound, *createdByID)
			}
			return fmt.Errorf("failed to verify user %d: %w", *createdByID, err)
		}
	}
	if restaurantID != nil {
		if _, err := s.restaurantRepo.GetRestaurantByID(*restaurantID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: restaurant ID %d", ErrRestaurantNotFound, *restaurantID)
			}
			return fmt.Errorf("failed to verify restaurant %d: %w", *restaurantID, err)
		}
	}
	return nil
}

func (s *eventService) CreateEvent(req CreateEventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: event name cannot be empty", ErrValidation)
	}
	if req.Time.IsZero() {
		return nil, fmt.Errorf("%w: event time is required", ErrValidation)
	}
	if err := s.verifyReferences(req.CreatedByID, req.RestaurantID); err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:         req.Name,
		Time:         req.Time,
		CreatedByID:  req.CreatedByID,
		RestaurantID: req.RestaurantID,
	}
	if _, err := s.eventRepo.CreateEvent(s.db, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventByID(id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvents(restaurantID *int64, page, pageSize int) ([]models.Event, int, error) {
	events, totalCount, err := s.eventRepo.GetEvents(restaurantID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get events: %w", err)
	}
	return events, totalCount, nil
}

func (s *eventService) UpdateEvent(id int64, req UpdateEventRequest) (*models.Event, error) {
	event, err := s.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: event name cannot be empty if provided", ErrValidation)
		}
		event.Name = *req.Name
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.CreatedByID != nil || req.RestaurantID != nil {
		if err := s.verifyReferences(req.CreatedByID, req.RestaurantID); err != nil {
			return nil, err
		}
	}
	if req.CreatedByID != nil {
		event.CreatedByID = req.CreatedByID
	}
	if req.RestaurantID != nil {
		event.RestaurantID = req.RestaurantID
	}

	if err := s.eventRepo.UpdateEvent(s.db, event); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(id int64) error {
	if err := s.eventRepo.DeleteEvent(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
