package models

import "time"

// StockLot represents one purchased or produced batch of an ingredient.
// Amount is the remaining quantity; Cost is the total monetary cost of the
// remainder and shrinks proportionally as the lot is consumed. A lot with
// Amount == 0 is exhausted but is only ever deleted by the expiry reaper.
type StockLot struct {
	ID           int64     `json:"id" db:"id"`
	IngredientID int64     `json:"ingredient_id" db:"ingredient_id" binding:"required"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Amount       float64   `json:"amount" db:"amount"`
	Unit         string    `json:"unit" db:"unit" binding:"required"`
	PurchaseDate time.Time `json:"purchase_date" db:"purchase_date"`
	ExpiryDate   time.Time `json:"expiry_date" db:"expiry_date" binding:"required"`
	Cost         float64   `json:"cost" db:"cost"`

	Ingredient *Ingredient `json:"ingredient,omitempty"` // For joining with Ingredient
}

// StockFilters narrows stock lot listings.
type StockFilters struct {
	IngredientID *int64
	Page         int
	PageSize     int
}
