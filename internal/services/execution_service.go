package services

import (
	"errors"
	"fmt"
	"time"

	"teamcook_backend/internal/metrics"
	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"

	"github.com/rs/zerolog/log"
)

// Custom Errors
var (
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrInvalidRecipeKind = errors.New("operation not valid for this recipe kind")
)

// DefaultExpiryDays is how long a freshly produced processed-ingredient lot
// is good for when the caller does not say otherwise.
const DefaultExpiryDays = 60

// --- Data Transfer Objects (DTOs) ---

// ExecuteProcessedRecipeRequest is used for executing a processed recipe.
// RecipeID comes from the URL path, not the request body.
type ExecuteProcessedRecipeRequest struct {
	RecipeID       int64   `json:"-"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"` // units of recipe output to produce
	ProcessingCost float64 `json:"processing_cost"`
	ExpiryDays     int     `json:"expiry_days"` // defaults to DefaultExpiryDays
}

// ExecuteFullRecipeRequest is used for executing (selling) a full recipe.
// RecipeID comes from the URL path, not the request body.
type ExecuteFullRecipeRequest struct {
	RecipeID  int64   `json:"-"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"` // units prepared and sold
	SalePrice float64 `json:"sale_price" binding:"required,gt=0"`
}

// --- ExecutionService Interface ---

// ExecutionService orchestrates stock allocation across all ingredients of a
// recipe. A processed recipe turns consumed stock into a new stock lot of a
// processed ingredient; a full recipe turns it into a sale record. Either
// way the whole execution is one transaction: if any ingredient cannot be
// allocated, deductions already made for earlier ingredients are rolled back.
type ExecutionService interface {
	ExecuteProcessedRecipe(req ExecuteProcessedRecipeRequest) (int64, error) // returns the new stock lot ID
	ExecuteFullRecipe(req ExecuteFullRecipeRequest) (int64, error)           // returns the new sale ID
}

// --- executionService Implementation ---

type executionService struct {
	recipeRepo     repositories.RecipeRepository
	ingredientRepo repositories.IngredientRepository
	stockRepo      repositories.StockRepository
	saleRepo       repositories.SaleRepository
	allocator      StockAllocator
	txManager      repositories.TxManager
}

// NewExecutionService creates a new instance of ExecutionService.
func NewExecutionService(
	recipeRepo repositories.RecipeRepository,
	ingredientRepo repositories.IngredientRepository,
	stockRepo repositories.StockRepository,
	saleRepo repositories.SaleRepository,
	allocator StockAllocator,
	txManager repositories.TxManager,
) ExecutionService {
	return &executionService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		stockRepo:      stockRepo,
		saleRepo:       saleRepo,
		allocator:      allocator,
		txManager:      txManager,
	}
}

// loadRecipeForExecution fetches the recipe and its ingredient list and
// checks the recipe kind. A recipe with no ingredients cannot be executed.
func (s *executionService) loadRecipeForExecution(recipeID int64, wantKind string) (*models.Recipe, []models.RecipeIngredient, error) {
	recipe, err := s.recipeRepo.GetRecipeByID(recipeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: recipe ID %d", ErrRecipeNotFound, recipeID)
		}
		return nil, nil, fmt.Errorf("fetching recipe %d: %w", recipeID, err)
	}
	if recipe.Kind != wantKind {
		return nil, nil, fmt.Errorf("%w: recipe '%s' is of kind '%s', expected '%s'", ErrInvalidRecipeKind, recipe.Name, recipe.Kind, wantKind)
	}

	ingredients, err := s.recipeRepo.GetRecipeIngredients(recipeID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching ingredients for recipe %d: %w", recipeID, err)
	}
	if len(ingredients) == 0 {
		return nil, nil, fmt.Errorf("%w: recipe '%s' has no ingredients", ErrValidation, recipe.Name)
	}
	return recipe, ingredients, nil
}

// allocateAll allocates required_amount x quantity for every recipe
// ingredient inside the given transaction and returns the summed charged cost.
func (s *executionService) allocateAll(executor repositories.SQLExecutor, ingredients []models.RecipeIngredient, quantity float64) (float64, error) {
	var totalCost float64
	for _, ri := range ingredients {
		required := ri.RequiredAmount * quantity
		lines, err := s.allocator.AllocateInTx(executor, ri.IngredientID, required)
		if err != nil {
			return 0, err
		}
		for _, line := range lines {
			totalCost += line.ChargedCost
		}
	}
	return totalCost, nil
}

func (s *executionService) ExecuteProcessedRecipe(req ExecuteProcessedRecipeRequest) (int64, error) {
	if req.Quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	expiryDays := req.ExpiryDays
	if expiryDays <= 0 {
		expiryDays = DefaultExpiryDays
	}

	recipe, ingredients, err := s.loadRecipeForExecution(req.RecipeID, models.RecipeKindProcessed)
	if err != nil {
		metrics.RecipeExecutionsTotal.WithLabelValues(models.RecipeKindProcessed, metrics.ResultError).Inc()
		return 0, err
	}

	var lotID int64
	err = s.txManager.WithinTx(func(executor repositories.SQLExecutor) error {
		totalCost, err := s.allocateAll(executor, ingredients, req.Quantity)
		if err != nil {
			return err
		}
		totalCost += req.ProcessingCost

		// The recipe's output is stocked under a processed ingredient named
		// after the recipe. The unit is taken from the first recipe
		// ingredient, which assumes a uniform unit across ingredients; this
		// is a known limitation of the data model, kept deliberately.
		processed, err := s.ingredientRepo.FindByNameAndKind(executor, recipe.Name, models.IngredientKindProcessed)
		if errors.Is(err, repositories.ErrNotFound) {
			processed = &models.Ingredient{
				Name:       recipe.Name,
				Unit:       ingredients[0].Unit,
				Categories: []string{},
				Kind:       models.IngredientKindProcessed,
			}
			if _, err := s.ingredientRepo.CreateIngredient(executor, processed); err != nil {
				return fmt.Errorf("creating processed ingredient '%s': %w", recipe.Name, err)
			}
		} else if err != nil {
			return fmt.Errorf("looking up processed ingredient '%s': %w", recipe.Name, err)
		}

		now := time.Now()
		lot := &models.StockLot{
			IngredientID: processed.ID,
			Name:         processed.Name,
			Amount:       req.Quantity,
			Unit:         processed.Unit,
			PurchaseDate: now,
			ExpiryDate:   now.AddDate(0, 0, expiryDays),
			Cost:         totalCost,
		}
		if _, err := s.stockRepo.CreateLot(executor, lot); err != nil {
			return fmt.Errorf("creating stock lot for processed ingredient '%s': %w", processed.Name, err)
		}
		lotID = lot.ID
		return nil
	})
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, ErrInsufficientStock) {
			result = metrics.ResultInsufficient
		}
		metrics.RecipeExecutionsTotal.WithLabelValues(models.RecipeKindProcessed, result).Inc()
		return 0, err
	}

	metrics.RecipeExecutionsTotal.WithLabelValues(models.RecipeKindProcessed, metrics.ResultOK).Inc()
	log.Info().
		Int64("recipe_id", recipe.ID).
		Str("recipe_name", recipe.Name).
		Float64("quantity", req.Quantity).
		Int64("stock_lot_id", lotID).
		Msg("Processed recipe executed")
	return lotID, nil
}

func (s *executionService) ExecuteFullRecipe(req ExecuteFullRecipeRequest) (int64, error) {
	if req.Quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if req.SalePrice <= 0 {
		return 0, fmt.Errorf("%w: sale price must be positive", ErrValidation)
	}

	recipe, ingredients, err := s.loadRecipeForExecution(req.RecipeID, models.RecipeKindFull)
	if err != nil {
		metrics.RecipeExecutionsTotal.WithLabelValues(models.RecipeKindFull, metrics.ResultError).Inc()
		return 0, err
	}

	var saleID int64
	err = s.txManager.WithinTx(func(executor repositories.SQLExecutor) error {
		if _, err := s.allocateAll(executor, ingredients, req.Quantity); err != nil {
			return err
		}

		sale := &models.Sale{
			RecipeID:     recipe.ID,
			Quantity:     req.Quantity,
			SalePrice:    req.SalePrice,
			SaleDate:     time.Now(),
			RestaurantID: recipe.RestaurantID,
		}
		if _, err := s.saleRepo.CreateSale(executor, sale); err != nil {
			return fmt.Errorf("recording sale for recipe '%s': %w", recipe.Name, err)
		}
		saleID = sale.ID
		return nil
	})
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, ErrInsufficientStock) {
			result = metrics.ResultInsufficient
		}
		metrics.RecipeExecutionsTotal.WithLabelValues(models.RecipeKindFull, result).Inc()
		return 0, err
	}

	metrics.RecipeExecutionsTotal.WithLabelValues(models.RecipeKindFull, metrics.ResultOK).Inc()
	log.Info().
		Int64("recipe_id", recipe.ID).
		Str("recipe_name", recipe.Name).
		Float64("quantity", req.Quantity).
		Int64("sale_id", saleID).
		Msg("Full recipe executed and sold")
	return saleID, nil
}
