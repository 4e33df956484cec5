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
	ErrValidation        = errors.New("validation error")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports an allocation that could not be satisfied.
// It carries the ingredient and the amount short, and unwraps to
// ErrInsufficientStock so callers can match it with errors.Is.
type InsufficientStockError struct {
	IngredientID int64
	Requested    float64
	Short        float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for ingredient ID %d: requested %.4f, short %.4f",
		e.IngredientID, e.Requested, e.Short)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// AllocationLine records one lot deduction performed by an allocation:
// which lot, how much was taken from it, and the cost charged for it.
type AllocationLine struct {
	LotID       int64   `json:"lot_id"`
	LotName     string  `json:"lot_name"`
	AmountTaken float64 `json:"amount_taken"`
	ChargedCost float64 `json:"charged_cost"`
}

// Remaining requirements below this are treated as satisfied; repeated
// float subtraction across lots must not manufacture phantom shortfalls.
const amountEpsilon = 1e-9

// StockAllocator consumes stock lots to satisfy a required amount of an
// ingredient. Lots are consumed FIFO by purchase date, oldest first, with
// partial fills per lot; the allocation as a whole is all-or-nothing.
type StockAllocator interface {
	// Allocate runs a standalone allocation in its own transaction.
	Allocate(ingredientID int64, requiredAmount float64) ([]AllocationLine, error)

	// AllocateInTx runs an allocation inside the caller's transaction, so
	// that multi-ingredient operations can roll back every deduction when a
	// later ingredient cannot be satisfied.
	AllocateInTx(executor repositories.SQLExecutor, ingredientID int64, requiredAmount float64) ([]AllocationLine, error)
}

type stockAllocator struct {
	stockRepo repositories.StockRepository
	txManager repositories.TxManager
}

// NewStockAllocator creates a new instance of StockAllocator.
func NewStockAllocator(stockRepo repositories.StockRepository, txManager repositories.TxManager) StockAllocator {
	return &stockAllocator{stockRepo: stockRepo, txManager: txManager}
}

func (a *stockAllocator) Allocate(ingredientID int64, requiredAmount float64) ([]AllocationLine, error) {
	var lines []AllocationLine
	err := a.txManager.WithinTx(func(executor repositories.SQLExecutor) error {
		var txErr error
		lines, txErr = a.AllocateInTx(executor, ingredientID, requiredAmount)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (a *stockAllocator) AllocateInTx(executor repositories.SQLExecutor, ingredientID int64, requiredAmount float64) ([]AllocationLine, error) {
	if requiredAmount <= 0 {
		metrics.AllocationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: required amount must be positive, got %f", ErrValidation, requiredAmount)
	}

	lots, err := a.stockRepo.LotsForAllocation(executor, ingredientID, time.Now())
	if err != nil {
		metrics.AllocationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("fetching lots for ingredient %d: %w", ingredientID, err)
	}

	// Plan against the fetched snapshot first; nothing is deducted until
	// the full requirement is known to be satisfiable.
	type plannedTake struct {
		lot  *models.StockLot
		take float64
	}
	plan := make([]plannedTake, 0, len(lots))
	remaining := requiredAmount
	for i := range lots {
		if remaining <= amountEpsilon {
			break
		}
		lot := &lots[i]
		if lot.Amount <= 0 {
			continue // exhausted lot, nothing to take
		}
		take := lot.Amount
		if take > remaining {
			take = remaining
		}
		plan = append(plan, plannedTake{lot: lot, take: take})
		remaining -= take
	}

	if remaining > amountEpsilon {
		metrics.AllocationsTotal.WithLabelValues(metrics.ResultInsufficient).Inc()
		return nil, &InsufficientStockError{
			IngredientID: ingredientID,
			Requested:    requiredAmount,
			Short:        remaining,
		}
	}

	lines := make([]AllocationLine, 0, len(plan))
	for _, p := range plan {
		charged, err := a.stockRepo.ApplyDeduction(executor, p.lot, p.take)
		if err != nil {
			metrics.AllocationsTotal.WithLabelValues(metrics.ResultError).Inc()
			return nil, fmt.Errorf("deducting %.4f from lot %d: %w", p.take, p.lot.ID, err)
		}
		lines = append(lines, AllocationLine{
			LotID:       p.lot.ID,
			LotName:     p.lot.Name,
			AmountTaken: p.take,
			ChargedCost: charged,
		})
	}

	metrics.AllocationsTotal.WithLabelValues(metrics.ResultOK).Inc()
	metrics.AllocatedLots.Add(float64(len(lines)))
	log.Debug().
		Int64("ingredient_id", ingredientID).
		Float64("required_amount", requiredAmount).
		Int("lots_consumed", len(lines)).
		Msg("Stock allocated")
	return lines, nil
}
