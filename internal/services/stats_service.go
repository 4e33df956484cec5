package services

import (
	"fmt"
	"time"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
)

// --- DTOs ---

// StockCounts reports how many distinct ingredients of each kind currently
// have stock on hand.
type StockCounts struct {
	RawCount       int `json:"raw_count"`
	ProcessedCount int `json:"processed_count"`
}

// StockHistoryDay is the amount of stock purchased on one calendar day.
type StockHistoryDay struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	RawAmount       float64 `json:"raw_amount"`
	ProcessedAmount float64 `json:"processed_amount"`
}

// StatsHistoryDays is how far back the purchase history looks.
const StatsHistoryDays = 7

// --- StatsService Interface ---
type StatsService interface {
	GetStockCounts() (*StockCounts, error)
	GetStockHistory(now time.Time) ([]StockHistoryDay, error)
}

// --- statsService Implementation ---
type statsService struct {
	statsRepo repositories.StatsRepository
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(statsRepo repositories.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetStockCounts() (*StockCounts, error) {
	rawCount, err := s.statsRepo.CountStockedIngredients(models.IngredientKindRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to count raw ingredients: %w", err)
	}
	processedCount, err := s.statsRepo.CountStockedIngredients(models.IngredientKindProcessed)
	if err != nil {
		return nil, fmt.Errorf("failed to count processed ingredients: %w", err)
	}
	return &StockCounts{RawCount: rawCount, ProcessedCount: processedCount}, nil
}

// GetStockHistory returns purchased amounts per day for the last
// StatsHistoryDays days, oldest first, including today.
func (s *statsService) GetStockHistory(now time.Time) ([]StockHistoryDay, error) {
	history := make([]StockHistoryDay, 0, StatsHistoryDays)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for i := StatsHistoryDays - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)

		rawAmount, err := s.statsRepo.PurchasedAmountBetween(models.IngredientKindRaw, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to sum raw purchases for %s: %w", start.Format("2006-01-02"), err)
		}
		processedAmount, err := s.statsRepo.PurchasedAmountBetween(models.IngredientKindProcessed, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to sum processed purchases for %s: %w", start.Format("2006-01-02"), err)
		}

		history = append(history, StockHistoryDay{
			Date:            start.Format("2006-01-02"),
			RawAmount:       rawAmount,
			ProcessedAmount: processedAmount,
		})
	}
	return history, nil
}
