package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"teamcook_backend/internal/models"
)

// EventRepository defines the interface for event-related database operations.
type EventRepository interface {
	CreateEvent(executor SQLExecutor, event *models.Event) (int64, error)
	GetEventByID(id int64) (*models.Event, error)
	GetEvents(restaurantID *int64, page, pageSize int) ([]models.Event, int, error)
	UpdateEvent(executor SQLExecutor, event *models.Event) error
	DeleteEvent(executor SQLExecutor, id int64) error
}

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func (r *eventRepository) CreateEvent(executor SQLExecutor, event *models.Event) (int64, error) {
	query := `INSERT INTO events (name, time, created_by_id, restaurant_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := executor.QueryRow(query,
		event.Name, event.Time, nullableID(event.CreatedByID), nullableID(event.RestaurantID),
	).Scan(&event.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating event: %v", ErrDatabaseError, err)
	}
	return event.ID, nil
}

func (r *eventRepository) GetEventByID(id int64) (*models.Event, error) {
	event := &models.Event{}
	var createdByID, restaurantID sql.NullInt64
	query := `SELECT id, name, time, created_by_id, restaurant_id FROM events WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&event.ID, &event.Name, &event.Time, &createdByID, &restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting event by ID %d: %v", ErrDatabaseError, id, err)
	}
	if createdByID.Valid {
		event.CreatedByID = &createdByID.Int64
	}
	if restaurantID.Valid {
		event.RestaurantID = &restaurantID.Int64
	}
	return event, nil
}

func (r *eventRepository) GetEvents(restaurantID *int64, page, pageSize int) ([]models.Event, int, error) {
	events := []models.Event{}
	totalCount := 0

	query := `SELECT id, name, time, created_by_id, restaurant_id, COUNT(*) OVER() AS total_count FROM events`
	var args []interface{}
	argCount := 1
	if restaurantID != nil {
		query += fmt.Sprintf(" WHERE restaurant_id = $%d", argCount)
		args = append(args, *restaurantID)
		argCount++
	}
	query += fmt.Sprintf(" ORDER BY time DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting events: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var event models.Event
		var createdByID, rid sql.NullInt64
		if err := rows.Scan(&event.ID, &event.Name, &event.Time, &createdByID, &rid, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning event: %v", ErrDatabaseError, err)
		}
		if createdByID.Valid {
			event.CreatedByID = &createdByID.Int64
		}
		if rid.Valid {
			event.RestaurantID = &rid.Int64
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating events: %v", ErrDatabaseError, err)
	}
	return events, totalCount, nil
}

func (r *eventRepository) UpdateEvent(executor SQLExecutor, event *models.Event) error {
	query := `UPDATE events SET name = $1, time = $2, created_by_id = $3, restaurant_id = $4 WHERE id = $5`
	result, err := executor.Exec(query,
		event.Name, event.Time, nullableID(event.CreatedByID), nullableID(event.RestaurantID), event.ID)
	if err != nil {
		return fmt.Errorf("%w: updating event ID %d: %v", ErrDatabaseError, event.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) DeleteEvent(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting event ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
