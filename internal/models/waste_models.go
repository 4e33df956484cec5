package models

import "time"

// WasteReasonExpired is the reason recorded by the expiry reaper.
const WasteReasonExpired = "Expired"

// Waste is the append-only record of stock removed from the ledger without
// being consumed by a recipe, e.g. by the expiry reaper.
type Waste struct {
	ID          int64     `json:"id" db:"id"`
	StockID     int64     `json:"stock_id" db:"stock_id"`
	WasteAmount float64   `json:"waste_amount" db:"waste_amount"`
	Unit        string    `json:"unit" db:"unit"`
	WasteDate   time.Time `json:"waste_date" db:"waste_date"`
	Reason      *string   `json:"reason,omitempty" db:"reason"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
}
