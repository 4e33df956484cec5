package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
)

// Custom Errors
var (
	ErrIngredientNotFound   = errors.New("ingredient not found")
	ErrIngredientNameExists = errors.New("ingredient with this name already exists")
)

// --- DTOs ---

// CreateIngredientRequest is used for creating a new ingredient.
type CreateIngredientRequest struct {
	Name       string   `json:"name" binding:"required"`
	Unit       string   `json:"unit" binding:"required"`
	Categories []string `json:"categories"`
	Kind       string   `json:"kind"` // defaults to 'Raw'
}

// UpdateIngredientRequest is used for updating an ingredient.
// Pointer fields distinguish "not provided" from zero values.
type UpdateIngredientRequest struct {
	Name       *string   `json:"name"`
	Unit       *string   `json:"unit"`
	Categories *[]string `json:"categories"`
	Kind       *string   `json:"kind"`
}

// --- IngredientService Interface ---
type IngredientService interface {
	CreateIngredient(req CreateIngredientRequest) (*models.Ingredient, error)
	GetIngredientByID(id int64) (*models.Ingredient, error)
	GetIngredients(kind *string, page, pageSize int) ([]models.Ingredient, int, error)
	UpdateIngredient(id int64, req UpdateIngredientRequest) (*models.Ingredient, error)
	DeleteIngredient(id int64) error
}

// --- ingredientService Implementation ---
type ingredientService struct {
	ingredientRepo repositories.IngredientRepository
	db             *sql.DB
}

// NewIngredientService creates a new instance of IngredientService.
func NewIngredientService(repo repositories.IngredientRepository, db *sql.DB) IngredientService {
	return &ingredientService{ingredientRepo: repo, db: db}
}

func (s *ingredientService) CreateIngredient(req CreateIngredientRequest) (*models.Ingredient, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: ingredient name cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(req.Unit) == "" {
		return nil, fmt.Errorf("%w: ingredient unit cannot be empty", ErrValidation)
	}
	kind := req.Kind
	if kind == "" {
		kind = models.IngredientKindRaw
	}
	if !models.IsValidIngredientKind(kind) {
		return nil, fmt.Errorf("%w: kind must be '%s' or '%s'", ErrValidation, models.IngredientKindRaw, models.IngredientKindProcessed)
	}

	ingredient := &models.Ingredient{
		Name:       req.Name,
		Unit:       req.Unit,
		Categories: req.Categories,
		Kind:       kind,
	}
	if ingredient.Categories == nil {
		ingredient.Categories = []string{}
	}

	if _, err := s.ingredientRepo.CreateIngredient(s.db, ingredient); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrIngredientNameExists, req.Name)
		}
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) GetIngredientByID(id int64) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetIngredientByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) GetIngredients(kind *string, page, pageSize int) ([]models.Ingredient, int, error) {
	if kind != nil && *kind != "" && !models.IsValidIngredientKind(*kind) {
		return nil, 0, fmt.Errorf("%w: kind must be '%s' or '%s'", ErrValidation, models.IngredientKindRaw, models.IngredientKindProcessed)
	}
	ingredients, totalCount, err := s.ingredientRepo.GetIngredients(kind, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get ingredients: %w", err)
	}
	return ingredients, totalCount, nil
}

func (s *ingredientService) UpdateIngredient(id int64, req UpdateIngredientRequest) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredientByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: ingredient name cannot be empty if provided", ErrValidation)
		}
		ingredient.Name = *req.Name
	}
	if req.Unit != nil {
		if strings.TrimSpace(*req.Unit) == "" {
			return nil, fmt.Errorf("%w: ingredient unit cannot be empty if provided", ErrValidation)
		}
		ingredient.Unit = *req.Unit
	}
	if req.Categories != nil {
		ingredient.Categories = *req.Categories
	}
	if req.Kind != nil {
		if !models.IsValidIngredientKind(*req.Kind) {
			return nil, fmt.Errorf("%w: kind must be '%s' or '%s'", ErrValidation, models.IngredientKindRaw, models.IngredientKindProcessed)
		}
		ingredient.Kind = *req.Kind
	}

	if err := s.ingredientRepo.UpdateIngredient(s.db, ingredient); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrIngredientNameExists, ingredient.Name)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) DeleteIngredient(id int64) error {
	if err := s.ingredientRepo.DeleteIngredient(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrIngredientNotFound
		}
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	return nil
}
