package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"teamcook_backend/internal/models"

	"github.com/lib/pq"
)

// RestaurantRepository defines the interface for restaurant-related database operations.
type RestaurantRepository interface {
	CreateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) (int64, error)
	GetRestaurantByID(id int64) (*models.Restaurant, error)
	GetRestaurants(page, pageSize int) ([]models.Restaurant, int, error)
	UpdateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) error
	DeleteRestaurant(executor SQLExecutor, id int64) error
}

type restaurantRepository struct {
	db *sql.DB
}

// NewRestaurantRepository creates a new instance of RestaurantRepository.
func NewRestaurantRepository(db *sql.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) CreateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) (int64, error) {
	query := `INSERT INTO restaurants (name, address, phone)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	err := executor.QueryRow(query, restaurant.Name, restaurant.Address, restaurant.Phone).Scan(&restaurant.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: restaurant name '%s' already exists (constraint: %s)", ErrDuplicateKey, restaurant.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating restaurant: %v", ErrDatabaseError, err)
	}
	return restaurant.ID, nil
}

func (r *restaurantRepository) GetRestaurantByID(id int64) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	var address, phone sql.NullString
	query := `SELECT id, name, address, phone FROM restaurants WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&restaurant.ID, &restaurant.Name, &address, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting restaurant by ID %d: %v", ErrDatabaseError, id, err)
	}
	if address.Valid {
		restaurant.Address = &address.String
	}
	if phone.Valid {
		restaurant.Phone = &phone.String
	}
	return restaurant, nil
}

func (r *restaurantRepository) GetRestaurants(page, pageSize int) ([]models.Restaurant, int, error) {
	restaurants := []models.Restaurant{}
	totalCount := 0
	query := `SELECT id, name, address, phone, COUNT(*) OVER() AS total_count
	          FROM restaurants
	          ORDER BY name
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting restaurants: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var restaurant models.Restaurant
		var address, phone sql.NullString
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &address, &phone, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning restaurant: %v", ErrDatabaseError, err)
		}
		if address.Valid {
			restaurant.Address = &address.String
		}
		if phone.Valid {
			restaurant.Phone = &phone.String
		}
		restaurants = append(restaurants, restaurant)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating restaurants: %v", ErrDatabaseError, err)
	}
	return restaurants, totalCount, nil
}

func (r *restaurantRepository) UpdateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) error {
	query := `UPDATE restaurants SET name = $1, address = $2, phone = $3 WHERE id = $4`
	result, err := executor.Exec(query, restaurant.Name, restaurant.Address, restaurant.Phone, restaurant.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: restaurant name '%s' already exists (constraint: %s)", ErrDuplicateKey, restaurant.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating restaurant ID %d: %v", ErrDatabaseError, restaurant.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) DeleteRestaurant(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting restaurant ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
