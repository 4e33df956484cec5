package services

import (
	"database/sql"
	"errors"
	"fmt"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
)

// --- DTOs ---

// CreateWasteRequest is used for recording manual spoilage or breakage
// against a stock lot. The lot itself is adjusted separately.
type CreateWasteRequest struct {
	StockID     int64   `json:"stock_id" binding:"required"`
	WasteAmount float64 `json:"waste_amount" binding:"required,gt=0"`
	Reason      *string `json:"reason"`
	Notes       *string `json:"notes"`
}

// --- WasteService Interface ---
type WasteService interface {
	RecordWaste(req CreateWasteRequest) (*models.Waste, error)
	GetWaste(page, pageSize int) ([]models.Waste, int, error)
}

// --- wasteService Implementation ---
type wasteService struct {
	wasteRepo repositories.WasteRepository
	stockRepo repositories.StockRepository
	db        *sql.DB
}

// NewWasteService creates a new instance of WasteService.
func NewWasteService(wasteRepo repositories.WasteRepository, stockRepo repositories.StockRepository, db *sql.DB) WasteService {
	return &wasteService{wasteRepo: wasteRepo, stockRepo: stockRepo, db: db}
}

func (s *wasteService) RecordWaste(req CreateWasteRequest) (*models.Waste, error) {
	if req.WasteAmount <= 0 {
		return nil, fmt.Errorf("%w: waste amount must be positive", ErrValidation)
	}

	lot, err := s.stockRepo.GetLotByID(req.StockID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: stock lot ID %d", ErrStockLotNotFound, req.StockID)
		}
		return nil, fmt.Errorf("failed to verify stock lot %d: %w", req.StockID, err)
	}

	waste := &models.Waste{
		StockID:     req.StockID,
		WasteAmount: req.WasteAmount,
		Unit:        lot.Unit,
		Reason:      req.Reason,
		Notes:       req.Notes,
	}
	if _, err := s.wasteRepo.CreateWaste(s.db, waste); err != nil {
		return nil, fmt.Errorf("failed to record waste: %w", err)
	}
	return waste, nil
}

func (s *wasteService) GetWaste(page, pageSize int) ([]models.Waste, int, error) {
	waste, totalCount, err := s.wasteRepo.GetWaste(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get waste records: %w", err)
	}
	return waste, totalCount, nil
}
