package models

import "time"

// Restaurant is a location recipes and events can be scoped to.
type Restaurant struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"name" db:"name" binding:"required"`
	Address *string `json:"address,omitempty" db:"address"`
	Phone   *string `json:"phone,omitempty" db:"phone"`
}

// Event is a scheduled kitchen event (tasting, catering job, training).
type Event struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Time         time.Time `json:"time" db:"time" binding:"required"`
	CreatedByID  *int64    `json:"created_by_id,omitempty" db:"created_by_id"`
	RestaurantID *int64    `json:"restaurant_id,omitempty" db:"restaurant_id"`
}
