package models

import "time"

// Recipe kinds. A processed recipe produces a new stocked ingredient
// (dough, sauce); a full recipe is a menu item sold directly.
const (
	RecipeKindProcessed = "Processed"
	RecipeKindFull      = "Full Recipe"
)

// Recipe owns an ordered list of ingredients and preparation steps.
// Both child lists are replaced wholesale when the recipe is updated.
type Recipe struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Kind         string    `json:"kind" db:"kind" binding:"required"` // 'Processed' or 'Full Recipe'
	CreationTime time.Time `json:"creation_time" db:"creation_time"`
	RestaurantID *int64    `json:"restaurant_id,omitempty" db:"restaurant_id"`

	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
	Steps       []RecipeStep       `json:"steps,omitempty"`
}

// RecipeIngredient states how much of an ingredient one unit of recipe
// output requires. The execution engine scales RequiredAmount by the
// requested output quantity.
type RecipeIngredient struct {
	ID             int64   `json:"id" db:"id"`
	RecipeID       int64   `json:"recipe_id" db:"recipe_id"`
	IngredientID   int64   `json:"ingredient_id" db:"ingredient_id" binding:"required"`
	RequiredAmount float64 `json:"required_amount" db:"required_amount" binding:"required,gt=0"`
	Unit           string  `json:"unit" db:"unit" binding:"required"`
}

// RecipeStep is one numbered instruction of a recipe.
type RecipeStep struct {
	ID          int64  `json:"id" db:"id"`
	RecipeID    int64  `json:"recipe_id" db:"recipe_id"`
	StepNumber  int    `json:"step_number" db:"step_number"`
	Instruction string `json:"instruction" db:"instruction" binding:"required"`
}

// IsValidRecipeKind reports whether kind is one of the known recipe kinds.
func IsValidRecipeKind(kind string) bool {
	return kind == RecipeKindProcessed || kind == RecipeKindFull
}
