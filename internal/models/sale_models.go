package models

import "time"

// Sale is the append-only record created when a full recipe is executed.
// Ingredient consumption for a sale is not stored per lot; it is
// reconstructed as required_amount x quantity when needed.
type Sale struct {
	ID           int64     `json:"id" db:"id"`
	RecipeID     int64     `json:"recipe_id" db:"recipe_id"`
	Quantity     float64   `json:"quantity" db:"quantity"`
	SalePrice    float64   `json:"sale_price" db:"sale_price"`
	SaleDate     time.Time `json:"sale_date" db:"sale_date"`
	RestaurantID *int64    `json:"restaurant_id,omitempty" db:"restaurant_id"`

	Recipe *Recipe `json:"recipe,omitempty"` // For joining with Recipe
}

// SaleFilters narrows sale listings.
type SaleFilters struct {
	RecipeID     *int64
	RestaurantID *int64
	Page         int
	PageSize     int
}
