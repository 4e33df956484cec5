package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"teamcook_backend/internal/models"

	"github.com/lib/pq"
)

// IngredientRepository defines the interface for ingredient-related database operations.
type IngredientRepository interface {
	CreateIngredient(executor SQLExecutor, ingredient *models.Ingredient) (int64, error)
	GetIngredientByID(id int64) (*models.Ingredient, error)
	GetIngredients(kind *string, page, pageSize int) ([]models.Ingredient, int, error)
	UpdateIngredient(executor SQLExecutor, ingredient *models.Ingredient) error
	DeleteIngredient(executor SQLExecutor, id int64) error

	// FindByNameAndKind looks an ingredient up by its unique name and kind,
	// reading through the given executor so the lookup participates in the
	// caller's transaction. Used by the recipe execution engine to
	// find-or-create the processed ingredient a recipe produces.
	FindByNameAndKind(executor SQLExecutor, name, kind string) (*models.Ingredient, error)
}

type ingredientRepository struct {
	db *sql.DB
}

// NewIngredientRepository creates a new instance of IngredientRepository.
func NewIngredientRepository(db *sql.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func joinCategories(categories []string) string {
	return strings.Join(categories, ",")
}

func splitCategories(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

func (r *ingredientRepository) CreateIngredient(executor SQLExecutor, ingredient *models.Ingredient) (int64, error) {
	query := `INSERT INTO ingredients (name, unit, categories, kind)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := executor.QueryRow(query,
		ingredient.Name, ingredient.Unit, joinCategories(ingredient.Categories), ingredient.Kind,
	).Scan(&ingredient.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: ingredient name '%s' already exists (constraint: %s)", ErrDuplicateKey, ingredient.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating ingredient: %v", ErrDatabaseError, err)
	}
	return ingredient.ID, nil
}

func (r *ingredientRepository) GetIngredientByID(id int64) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{}
	var categories string
	query := `SELECT id, name, unit, categories, kind FROM ingredients WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&ingredient.ID, &ingredient.Name, &ingredient.Unit, &categories, &ingredient.Kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting ingredient by ID %d: %v", ErrDatabaseError, id, err)
	}
	ingredient.Categories = splitCategories(categories)
	return ingredient, nil
}

func (r *ingredientRepository) GetIngredients(kind *string, page, pageSize int) ([]models.Ingredient, int, error) {
	ingredients := []models.Ingredient{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, unit, categories, kind, COUNT(*) OVER() AS total_count FROM ingredients`)

	var args []interface{}
	argCount := 1
	if kind != nil && *kind != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE kind = $%d", argCount))
		args = append(args, *kind)
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY name")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting ingredients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ingredient models.Ingredient
		var categories string
		if err := rows.Scan(&ingredient.ID, &ingredient.Name, &ingredient.Unit, &categories, &ingredient.Kind, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning ingredient: %v", ErrDatabaseError, err)
		}
		ingredient.Categories = splitCategories(categories)
		ingredients = append(ingredients, ingredient)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating ingredients: %v", ErrDatabaseError, err)
	}
	return ingredients, totalCount, nil
}

func (r *ingredientRepository) UpdateIngredient(executor SQLExecutor, ingredient *models.Ingredient) error {
	query := `UPDATE ingredients SET name = $1, unit = $2, categories = $3, kind = $4 WHERE id = $5`
	result, err := executor.Exec(query,
		ingredient.Name, ingredient.Unit, joinCategories(ingredient.Categories), ingredient.Kind, ingredient.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: ingredient name '%s' already exists (constraint: %s)", ErrDuplicateKey, ingredient.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating ingredient ID %d: %v", ErrDatabaseError, ingredient.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ingredientRepository) DeleteIngredient(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting ingredient ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ingredientRepository) FindByNameAndKind(executor SQLExecutor, name, kind string) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{}
	var categories string
	query := `SELECT id, name, unit, categories, kind FROM ingredients WHERE name = $1 AND kind = $2`
	err := executor.QueryRow(query, name, kind).Scan(&ingredient.ID, &ingredient.Name, &ingredient.Unit, &categories, &ingredient.Kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding ingredient '%s' (%s): %v", ErrDatabaseError, name, kind, err)
	}
	ingredient.Categories = splitCategories(categories)
	return ingredient, nil
}
