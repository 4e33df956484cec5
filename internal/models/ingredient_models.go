package models

// Ingredient kinds. Processed ingredients are produced in-house by executing
// a processed recipe; raw ingredients are purchased.
const (
	IngredientKindRaw       = "Raw"
	IngredientKindProcessed = "Processed"
)

// Ingredient represents a raw or processed ingredient that stock lots belong to.
// Categories are free-text tags, stored comma-joined in the database.
type Ingredient struct {
	ID         int64    `json:"id" db:"id"`
	Name       string   `json:"name" db:"name" binding:"required"`
	Unit       string   `json:"unit" db:"unit" binding:"required"`
	Categories []string `json:"categories" db:"categories"`
	Kind       string   `json:"kind" db:"kind" binding:"required"` // 'Raw' or 'Processed'
}

// IsValidIngredientKind reports whether kind is one of the known ingredient kinds.
func IsValidIngredientKind(kind string) bool {
	return kind == IngredientKindRaw || kind == IngredientKindProcessed
}
