package services

import (
	"errors"
	"fmt"
	"strings"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
)

// Custom Errors
var (
	ErrRecipeNameExists   = errors.New("recipe with this name already exists")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// --- DTOs ---

// RecipeIngredientRequest is one ingredient line of a recipe.
type RecipeIngredientRequest struct {
	IngredientID   int64   `json:"ingredient_id" binding:"required"`
	RequiredAmount float64 `json:"required_amount" binding:"required,gt=0"`
	Unit           string  `json:"unit" binding:"required"`
}

// RecipeStepRequest is one numbered instruction of a recipe.
type RecipeStepRequest struct {
	StepNumber  int    `json:"step_number" binding:"required,gt=0"`
	Instruction string `json:"instruction" binding:"required"`
}

// CreateRecipeRequest is used for creating a new recipe with its children.
type CreateRecipeRequest struct {
	Name         string                    `json:"name" binding:"required"`
	Kind         string                    `json:"kind" binding:"required"` // 'Processed' or 'Full Recipe'
	RestaurantID *int64                    `json:"restaurant_id"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients" binding:"dive"`
	Steps        []RecipeStepRequest       `json:"steps" binding:"dive"`
}

// UpdateRecipeRequest is used for updating a recipe. When Ingredients or
// Steps are provided, the existing child lists are replaced wholesale.
type UpdateRecipeRequest struct {
	Name         *string                    `json:"name"`
	Kind         *string                    `json:"kind"`
	RestaurantID *int64                     `json:"restaurant_id"`
	Ingredients  *[]RecipeIngredientRequest `json:"ingredients"`
	Steps        *[]RecipeStepRequest       `json:"steps"`
}

// --- RecipeService Interface ---
type RecipeService interface {
	CreateRecipe(req CreateRecipeRequest) (*models.Recipe, error)
	GetRecipeByID(id int64) (*models.Recipe, error) // includes ingredients and steps
	GetRecipes(kind *string, restaurantID *int64, page, pageSize int) ([]models.Recipe, int, error)
	UpdateRecipe(id int64, req UpdateRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(id int64) error
}

// --- recipeService Implementation ---
type recipeService struct {
	recipeRepo     repositories.RecipeRepository
	ingredientRepo repositories.IngredientRepository
	restaurantRepo repositories.RestaurantRepository
	txManager      repositories.TxManager
}

// NewRecipeService creates a new instance of RecipeService.
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	ingredientRepo repositories.IngredientRepository,
	restaurantRepo repositories.RestaurantRepository,
	txManager repositories.TxManager,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		restaurantRepo: restaurantRepo,
		txManager:      txManager,
	}
}

func (s *recipeService) validateChildren(ingredients []RecipeIngredientRequest, steps []RecipeStepRequest) error {
	for _, ri := range ingredients {
		if ri.RequiredAmount <= 0 {
			return fmt.Errorf("%w: required amount for ingredient ID %d must be positive", ErrValidation, ri.IngredientID)
		}
		if _, err := s.ingredientRepo.GetIngredientByID(ri.IngredientID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: ingredient ID %d", ErrIngredientNotFound, ri.IngredientID)
			}
			return fmt.Errorf("failed to verify ingredient %d: %w", ri.IngredientID, err)
		}
	}
	for _, step := range steps {
		if strings.TrimSpace(step.Instruction) == "" {
			return fmt.Errorf("%w: step %d instruction cannot be empty", ErrValidation, step.StepNumber)
		}
	}
	return nil
}

func (s *recipeService) verifyRestaurant(restaurantID *int64) error {
	if restaurantID == nil {
		return nil
	}
	if _, err := s.restaurantRepo.GetRestaurantByID(*restaurantID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: restaurant ID %d", ErrRestaurantNotFound, *restaurantID)
		}
		return fmt.Errorf("failed to verify restaurant %d: %w", *restaurantID, err)
	}
	return nil
}

func (s *recipeService) insertChildren(executor repositories.SQLExecutor, recipeID int64, ingredients []RecipeIngredientRequest, steps []RecipeStepRequest) error {
	for _, ri := range ingredients {
		child := &models.RecipeIngredient{
			RecipeID:       recipeID,
			IngredientID:   ri.IngredientID,
			RequiredAmount: ri.RequiredAmount,
			Unit:           ri.Unit,
		}
		if _, err := s.recipeRepo.CreateRecipeIngredient(executor, child); err != nil {
			return fmt.Errorf("failed to create recipe ingredient (ingredient_id: %d): %w", ri.IngredientID, err)
		}
	}
	for _, step := range steps {
		child := &models.RecipeStep{
			RecipeID:    recipeID,
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
		}
		if _, err := s.recipeRepo.CreateRecipeStep(executor, child); err != nil {
			return fmt.Errorf("failed to create recipe step %d: %w", step.StepNumber, err)
		}
	}
	return nil
}

func (s *recipeService) CreateRecipe(req CreateRecipeRequest) (*models.Recipe, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: recipe name cannot be empty", ErrValidation)
	}
	if !models.IsValidRecipeKind(req.Kind) {
		return nil, fmt.Errorf("%w: kind must be '%s' or '%s'", ErrValidation, models.RecipeKindProcessed, models.RecipeKindFull)
	}
	if err := s.verifyRestaurant(req.RestaurantID); err != nil {
		return nil, err
	}
	if err := s.validateChildren(req.Ingredients, req.Steps); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:         req.Name,
		Kind:         req.Kind,
		RestaurantID: req.RestaurantID,
	}
	err := s.txManager.WithinTx(func(executor repositories.SQLExecutor) error {
		if _, err := s.recipeRepo.CreateRecipe(executor, recipe); err != nil {
			return err
		}
		return s.insertChildren(executor, recipe.ID, req.Ingredients, req.Steps)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrRecipeNameExists, req.Name)
		}
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return s.GetRecipeByID(recipe.ID)
}

func (s *recipeService) GetRecipeByID(id int64) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetRecipeByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: recipe ID %d", ErrRecipeNotFound, id)
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	ingredients, err := s.recipeRepo.GetRecipeIngredients(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe ingredients: %w", err)
	}
	recipe.Ingredients = ingredients

	steps, err := s.recipeRepo.GetRecipeSteps(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe steps: %w", err)
	}
	recipe.Steps = steps

	return recipe, nil
}

func (s *recipeService) GetRecipes(kind *string, restaurantID *int64, page, pageSize int) ([]models.Recipe, int, error) {
	if kind != nil && *kind != "" && !models.IsValidRecipeKind(*kind) {
		return nil, 0, fmt.Errorf("%w: kind must be '%s' or '%s'", ErrValidation, models.RecipeKindProcessed, models.RecipeKindFull)
	}
	recipes, totalCount, err := s.recipeRepo.GetRecipes(kind, restaurantID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get recipes: %w", err)
	}
	return recipes, totalCount, nil
}

func (s *recipeService) UpdateRecipe(id int64, req UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetRecipeByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: recipe ID %d", ErrRecipeNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch recipe for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: recipe name cannot be empty if provided", ErrValidation)
		}
		recipe.Name = *req.Name
	}
	if req.Kind != nil {
		if !models.IsValidRecipeKind(*req.Kind) {
			return nil, fmt.Errorf("%w: kind must be '%s' or '%s'", ErrValidation, models.RecipeKindProcessed, models.RecipeKindFull)
		}
		recipe.Kind = *req.Kind
	}
	if req.RestaurantID != nil {
		if err := s.verifyRestaurant(req.RestaurantID); err != nil {
			return nil, err
		}
		recipe.RestaurantID = req.RestaurantID
	}
	if req.Ingredients != nil || req.Steps != nil {
		var ingredients []RecipeIngredientRequest
		var steps []RecipeStepRequest
		if req.Ingredients != nil {
			ingredients = *req.Ingredients
		}
		if req.Steps != nil {
			steps = *req.Steps
		}
		if err := s.validateChildren(ingredients, steps); err != nil {
			return nil, err
		}
	}

	err = s.txManager.WithinTx(func(executor repositories.SQLExecutor) error {
		if err := s.recipeRepo.UpdateRecipe(executor, recipe); err != nil {
			return err
		}
		// Child lists are replaced wholesale when provided.
		if req.Ingredients != nil {
			if err := s.recipeRepo.DeleteRecipeIngredientsByRecipeID(executor, id); err != nil {
				return err
			}
			for _, ri := range *req.Ingredients {
				child := &models.RecipeIngredient{
					RecipeID:       id,
					IngredientID:   ri.IngredientID,
					RequiredAmount: ri.RequiredAmount,
					Unit:           ri.Unit,
				}
				if _, err := s.recipeRepo.CreateRecipeIngredient(executor, child); err != nil {
					return err
				}
			}
		}
		if req.Steps != nil {
			if err := s.recipeRepo.DeleteRecipeStepsByRecipeID(executor, id); err != nil {
				return err
			}
			for _, step := range *req.Steps {
				child := &models.RecipeStep{
					RecipeID:    id,
					StepNumber:  step.StepNumber,
					Instruction: step.Instruction,
				}
				if _, err := s.recipeRepo.CreateRecipeStep(executor, child); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrRecipeNameExists, recipe.Name)
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return s.GetRecipeByID(id)
}

func (s *recipeService) DeleteRecipe(id int64) error {
	err := s.txManager.WithinTx(func(executor repositories.SQLExecutor) error {
		if err := s.recipeRepo.DeleteRecipeIngredientsByRecipeID(executor, id); err != nil {
			return err
		}
		if err := s.recipeRepo.DeleteRecipeStepsByRecipeID(executor, id); err != nil {
			return err
		}
		return s.recipeRepo.DeleteRecipe(executor, id)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: recipe ID %d", ErrRecipeNotFound, id)
		}
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}
