package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
)

// Custom Errors
var (
	ErrStockLotNotFound = errors.New("stock lot not found")
)

// --- DTOs ---

// CreateStockLotRequest is used for registering a purchased stock lot.
type CreateStockLotRequest struct {
	IngredientID int64      `json:"ingredient_id" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Amount       float64    `json:"amount" binding:"required,gt=0"`
	Unit         string     `json:"unit" binding:"required"`
	PurchaseDate *time.Time `json:"purchase_date"` // defaults to now
	ExpiryDate   time.Time  `json:"expiry_date" binding:"required"`
	Cost         float64    `json:"cost"`
}

// UpdateStockLotRequest is used for correcting a stock lot record.
type UpdateStockLotRequest struct {
	IngredientID *int64     `json:"ingredient_id"`
	Name         *string    `json:"name"`
	Amount       *float64   `json:"amount"`
	Unit         *string    `json:"unit"`
	PurchaseDate *time.Time `json:"purchase_date"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Cost         *float64   `json:"cost"`
}

// --- StockService Interface ---
type StockService interface {
	CreateLot(req CreateStockLotRequest) (*models.StockLot, error)
	GetLotByID(id int64) (*models.StockLot, error)
	GetLots(filters models.StockFilters) ([]models.StockLot, int, error)
	UpdateLot(id int64, req UpdateStockLotRequest) (*models.StockLot, error)
	DeleteLot(id int64) error
}

// --- stockService Implementation ---
type stockService struct {
	stockRepo      repositories.StockRepository
	ingredientRepo repositories.IngredientRepository
	db             *sql.DB
}

// NewStockService creates a new instance of StockService.
func NewStockService(stockRepo repositories.StockRepository, ingredientRepo repositories.IngredientRepository, db *sql.DB) StockService {
	return &stockService{stockRepo: stockRepo, ingredientRepo: ingredientRepo, db: db}
}

func (s *stockService) CreateLot(req CreateStockLotRequest) (*models.StockLot, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: lot name cannot be empty", ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if req.Cost < 0 {
		return nil, fmt.Errorf("%w: cost cannot be negative", ErrValidation)
	}
	if req.ExpiryDate.IsZero() {
		return nil, fmt.Errorf("%w: expiry date is required", ErrValidation)
	}

	if _, err := s.ingredientRepo.GetIngredientByID(req.IngredientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ingredient ID %d", ErrIngredientNotFound, req.IngredientID)
		}
		return nil, fmt.Errorf("failed to verify ingredient %d: %w", req.IngredientID, err)
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	lot := &models.StockLot{
		IngredientID: req.IngredientID,
		Name:         req.Name,
		Amount:       req.Amount,
		Unit:         req.Unit,
		PurchaseDate: purchaseDate,
		ExpiryDate:   req.ExpiryDate,
		Cost:         req.Cost,
	}
	if _, err := s.stockRepo.CreateLot(s.db, lot); err != nil {
		return nil, fmt.Errorf("failed to create stock lot: %w", err)
	}
	return lot, nil
}

func (s *stockService) GetLotByID(id int64) (*models.StockLot, error) {
	lot, err := s.stockRepo.GetLotByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStockLotNotFound
		}
		return nil, fmt.Errorf("failed to get stock lot: %w", err)
	}
	return lot, nil
}

func (s *stockService) GetLots(filters models.StockFilters) ([]models.StockLot, int, error) {
	lots, totalCount, err := s.stockRepo.GetLots(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get stock lots: %w", err)
	}
	return lots, totalCount, nil
}

func (s *stockService) UpdateLot(id int64, req UpdateStockLotRequest) (*models.StockLot, error) {
	lot, err := s.GetLotByID(id)
	if err != nil {
		return nil, err
	}

	if req.IngredientID != nil && *req.IngredientID != lot.IngredientID {
		if _, err := s.ingredientRepo.GetIngredientByID(*req.IngredientID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ingredient ID %d", ErrIngredientNotFound, *req.IngredientID)
			}
			return nil, fmt.Errorf("failed to verify ingredient %d: %w", *req.IngredientID, err)
		}
		lot.IngredientID = *req.IngredientID
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: lot name cannot be empty if provided", ErrValidation)
		}
		lot.Name = *req.Name
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, fmt.Errorf("%w: amount cannot be negative", ErrValidation)
		}
		lot.Amount = *req.Amount
	}
	if req.Unit != nil {
		lot.Unit = *req.Unit
	}
	if req.PurchaseDate != nil {
		lot.PurchaseDate = *req.PurchaseDate
	}
	if req.ExpiryDate != nil {
		lot.ExpiryDate = *req.ExpiryDate
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			return nil, fmt.Errorf("%w: cost cannot be negative", ErrValidation)
		}
		lot.Cost = *req.Cost
	}

	if err := s.stockRepo.UpdateLot(s.db, lot); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStockLotNotFound
		}
		return nil, fmt.Errorf("failed to update stock lot: %w", err)
	}
	return lot, nil
}

func (s *stockService) DeleteLot(id int64) error {
	if err := s.stockRepo.DeleteLot(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStockLotNotFound
		}
		return fmt.Errorf("failed to delete stock lot: %w", err)
	}
	return nil
}
