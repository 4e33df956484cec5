package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
)

// Custom Errors
var (
	ErrRestaurantNameExists = errors.New("restaurant with this name already exists")
)

// --- DTOs ---

// CreateRestaurantRequest is used for creating a new restaurant.
type CreateRestaurantRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// UpdateRestaurantRequest is used for updating a restaurant.
type UpdateRestaurantRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// --- RestaurantService Interface ---
type RestaurantService interface {
	CreateRestaurant(req CreateRestaurantRequest) (*models.Restaurant, error)
	GetRestaurantByID(id int64) (*models.Restaurant, error)
	GetRestaurants(page, pageSize int) ([]models.Restaurant, int, error)
	UpdateRestaurant(id int64, req UpdateRestaurantRequest) (*models.Restaurant, error)
	DeleteRestaurant(id int64) error
}

// --- restaurantService Implementation ---
type restaurantService struct {
	restaurantRepo repositories.RestaurantRepository
	db             *sql.DB
}

// NewRestaurantService creates a new instance of RestaurantService.
func NewRestaurantService(repo repositories.RestaurantRepository, db *sql.DB) RestaurantService {
	return &restaurantService{restaurantRepo: repo, db: db}
}

func (s *restaurantService) CreateRestaurant(req CreateRestaurantRequest) (*models.Restaurant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: restaurant name cannot be empty", ErrValidation)
	}

	restaurant := &models.Restaurant{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if _, err := s.restaurantRepo.CreateRestaurant(s.db, restaurant); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrRestaurantNameExists, req.Name)
		}
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *restaurantService) GetRestaurantByID(id int64) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetRestaurantByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *restaurantService) GetRestaurants(page, pageSize int) ([]models.Restaurant, int, error) {
	restaurants, totalCount, err := s.restaurantRepo.GetRestaurants(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get restaurants: %w", err)
	}
	return restaurants, totalCount, nil
}

func (s *restaurantService) UpdateRestaurant(id int64, req UpdateRestaurantRequest) (*models.Restaurant, error) {
	restaurant, err := s.GetRestaurantByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: restaurant name cannot be empty if provided", ErrValidation)
		}
		restaurant.Name = *req.Name
	}
	if req.Address != nil {
		restaurant.Address = req.Address
	}
	if req.Phone != nil {
		restaurant.Phone = req.Phone
	}

	if err := s.restaurantRepo.UpdateRestaurant(s.db, restaurant); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrRestaurantNameExists, restaurant.Name)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *restaurantService) DeleteRestaurant(id int64) error {
	if err := s.restaurantRepo.DeleteRestaurant(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return nil
}
