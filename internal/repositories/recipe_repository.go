package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"teamcook_backend/internal/models"

	"github.com/lib/pq"
)

// RecipeRepository defines the interface for recipe-related database
// operations. Recipe ingredients and steps are owned by their recipe and
// replaced wholesale on update, so the only child mutations offered are
// create and delete-all.
type RecipeRepository interface {
	CreateRecipe(executor SQLExecutor, recipe *models.Recipe) (int64, error)
	GetRecipeByID(id int64) (*models.Recipe, error)
	GetRecipes(kind *string, restaurantID *int64, page, pageSize int) ([]models.Recipe, int, error)
	UpdateRecipe(executor SQLExecutor, recipe *models.Recipe) error
	DeleteRecipe(executor SQLExecutor, id int64) error

	CreateRecipeIngredient(executor SQLExecutor, ri *models.RecipeIngredient) (int64, error)
	GetRecipeIngredients(recipeID int64) ([]models.RecipeIngredient, error)
	DeleteRecipeIngredientsByRecipeID(executor SQLExecutor, recipeID int64) error

	CreateRecipeStep(executor SQLExecutor, step *models.RecipeStep) (int64, error)
	GetRecipeSteps(recipeID int64) ([]models.RecipeStep, error)
	DeleteRecipeStepsByRecipeID(executor SQLExecutor, recipeID int64) error
}

type recipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new instance of RecipeRepository.
func NewRecipeRepository(db *sql.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(executor SQLExecutor, recipe *models.Recipe) (int64, error) {
	query := `INSERT INTO recipes (name, kind, creation_time, restaurant_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	if recipe.CreationTime.IsZero() {
		recipe.CreationTime = time.Now()
	}
	var restaurantID sql.NullInt64
	if recipe.RestaurantID != nil {
		restaurantID = sql.NullInt64{Int64: *recipe.RestaurantID, Valid: true}
	}
	err := executor.QueryRow(query, recipe.Name, recipe.Kind, recipe.CreationTime, restaurantID).Scan(&recipe.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: recipe name '%s' already exists (constraint: %s)", ErrDuplicateKey, recipe.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating recipe: %v", ErrDatabaseError, err)
	}
	return recipe.ID, nil
}

func (r *recipeRepository) GetRecipeByID(id int64) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	var restaurantID sql.NullInt64
	query := `SELECT id, name, kind, creation_time, restaurant_id FROM recipes WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&recipe.ID, &recipe.Name, &recipe.Kind, &recipe.CreationTime, &restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting recipe by ID %d: %v", ErrDatabaseError, id, err)
	}
	if restaurantID.Valid {
		recipe.RestaurantID = &restaurantID.Int64
	}
	return recipe, nil
}

func (r *recipeRepository) GetRecipes(kind *string, restaurantID *int64, page, pageSize int) ([]models.Recipe, int, error) {
	recipes := []models.Recipe{}
	totalCount := 0

	query := `SELECT id, name, kind, creation_time, restaurant_id, COUNT(*) OVER() AS total_count FROM recipes`
	var conditions []string
	var args []interface{}
	argCount := 1

	if kind != nil && *kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argCount))
		args = append(args, *kind)
		argCount++
	}
	if restaurantID != nil {
		conditions = append(conditions, fmt.Sprintf("restaurant_id = $%d", argCount))
		args = append(args, *restaurantID)
		argCount++
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting recipes: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipe models.Recipe
		var rid sql.NullInt64
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.Kind, &recipe.CreationTime, &rid, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning recipe: %v", ErrDatabaseError, err)
		}
		if rid.Valid {
			recipe.RestaurantID = &rid.Int64
		}
		recipes = append(recipes, recipe)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating recipes: %v", ErrDatabaseError, err)
	}
	return recipes, totalCount, nil
}

func (r *recipeRepository) UpdateRecipe(executor SQLExecutor, recipe *models.Recipe) error {
	query := `UPDATE recipes SET name = $1, kind = $2, restaurant_id = $3 WHERE id = $4`
	var restaurantID sql.NullInt64
	if recipe.RestaurantID != nil {
		restaurantID = sql.NullInt64{Int64: *recipe.RestaurantID, Valid: true}
	}
	result, err := executor.Exec(query, recipe.Name, recipe.Kind, restaurantID, recipe.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: recipe name '%s' already exists (constraint: %s)", ErrDuplicateKey, recipe.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating recipe ID %d: %v", ErrDatabaseError, recipe.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recipeRepository) DeleteRecipe(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting recipe ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recipeRepository) CreateRecipeIngredient(executor SQLExecutor, ri *models.RecipeIngredient) (int64, error) {
	query := `INSERT INTO recipe_ingredients (recipe_id, ingredient_id, required_amount, unit)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := executor.QueryRow(query, ri.RecipeID, ri.IngredientID, ri.RequiredAmount, ri.Unit).Scan(&ri.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating recipe ingredient: %v", ErrDatabaseError, err)
	}
	return ri.ID, nil
}

func (r *recipeRepository) GetRecipeIngredients(recipeID int64) ([]models.RecipeIngredient, error) {
	query := `SELECT id, recipe_id, ingredient_id, required_amount, unit
	          FROM recipe_ingredients
	          WHERE recipe_id = $1
	          ORDER BY id`
	rows, err := r.db.Query(query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting recipe ingredients for recipe %d: %v", ErrDatabaseError, recipeID, err)
	}
	defer rows.Close()

	ingredients := []models.RecipeIngredient{}
	for rows.Next() {
		var ri models.RecipeIngredient
		if err := rows.Scan(&ri.ID, &ri.RecipeID, &ri.IngredientID, &ri.RequiredAmount, &ri.Unit); err != nil {
			return nil, fmt.Errorf("%w: scanning recipe ingredient: %v", ErrDatabaseError, err)
		}
		ingredients = append(ingredients, ri)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating recipe ingredients: %v", ErrDatabaseError, err)
	}
	return ingredients, nil
}

func (r *recipeRepository) DeleteRecipeIngredientsByRecipeID(executor SQLExecutor, recipeID int64) error {
	_, err := executor.Exec(`DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return fmt.Errorf("%w: deleting recipe ingredients for recipe %d: %v", ErrDatabaseError, recipeID, err)
	}
	return nil
}

func (r *recipeRepository) CreateRecipeStep(executor SQLExecutor, step *models.RecipeStep) (int64, error) {
	query := `INSERT INTO recipe_steps (recipe_id, step_number, instruction)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	err := executor.QueryRow(query, step.RecipeID, step.StepNumber, step.Instruction).Scan(&step.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating recipe step: %v", ErrDatabaseError, err)
	}
	return step.ID, nil
}

func (r *recipeRepository) GetRecipeSteps(recipeID int64) ([]models.RecipeStep, error) {
	query := `SELECT id, recipe_id, step_number, instruction
	          FROM recipe_steps
	          WHERE recipe_id = $1
	          ORDER BY step_number`
	rows, err := r.db.Query(query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting recipe steps for recipe %d: %v", ErrDatabaseError, recipeID, err)
	}
	defer rows.Close()

	steps := []models.RecipeStep{}
	for rows.Next() {
		var step models.RecipeStep
		if err := rows.Scan(&step.ID, &step.RecipeID, &step.StepNumber, &step.Instruction); err != nil {
			return nil, fmt.Errorf("%w: scanning recipe step: %v", ErrDatabaseError, err)
		}
		steps = append(steps, step)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating recipe steps: %v", ErrDatabaseError, err)
	}
	return steps, nil
}

func (r *recipeRepository) DeleteRecipeStepsByRecipeID(executor SQLExecutor, recipeID int64) error {
	_, err := executor.Exec(`DELETE FROM recipe_steps WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return fmt.Errorf("%w: deleting recipe steps for recipe %d: %v", ErrDatabaseError, recipeID, err)
	}
	return nil
}
