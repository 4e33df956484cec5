package services

import (
	"errors"
	"testing"
	"time"

	"teamcook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAllocatorFixture() (*fakeStockRepo, StockAllocator) {
	stockRepo := newFakeStockRepo()
	txManager := newFakeTxManager(stockRepo)
	return stockRepo, NewStockAllocator(stockRepo, txManager)
}

func freshLot(ingredientID int64, amount, cost float64, purchasedDaysAgo int) models.StockLot {
	now := time.Now()
	return models.StockLot{
		IngredientID: ingredientID,
		Name:         "lot",
		Amount:       amount,
		Unit:         "g",
		PurchaseDate: now.AddDate(0, 0, -purchasedDaysAgo),
		ExpiryDate:   now.AddDate(0, 0, 30),
		Cost:         cost,
	}
}

func TestAllocateConsumesOldestLotsFirst(t *testing.T) {
	stockRepo, allocator := newAllocatorFixture()
	oldest := stockRepo.addLot(freshLot(1, 5, 10, 3))
	middle := stockRepo.addLot(freshLot(1, 5, 10, 2))
	newest := stockRepo.addLot(freshLot(1, 5, 10, 1))

	lines, err := allocator.Allocate(1, 7)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, oldest.ID, lines[0].LotID)
	assert.InDelta(t, 5.0, lines[0].AmountTaken, 1e-9)
	assert.Equal(t, middle.ID, lines[1].LotID)
	assert.InDelta(t, 2.0, lines[1].AmountTaken, 1e-9)

	assert.InDelta(t, 0.0, stockRepo.lots[oldest.ID].Amount, 1e-9)
	assert.InDelta(t, 3.0, stockRepo.lots[middle.ID].Amount, 1e-9)
	assert.InDelta(t, 5.0, stockRepo.lots[newest.ID].Amount, 1e-9)
}

func TestAllocateChargesProportionalCost(t *testing.T) {
	stockRepo, allocator := newAllocatorFixture()
	lot := stockRepo.addLot(freshLot(1, 10, 100, 1))

	lines, err := allocator.Allocate(1, 4)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.InDelta(t, 40.0, lines[0].ChargedCost, 1e-9)
	assert.InDelta(t, 6.0, stockRepo.lots[lot.ID].Amount, 1e-9)
	assert.InDelta(t, 60.0, stockRepo.lots[lot.ID].Cost, 1e-9)
}

func TestAllocateInsufficientStockLeavesLotsUntouched(t *testing.T) {
	stockRepo, allocator := newAllocatorFixture()
	first := stockRepo.addLot(freshLot(1, 5, 10, 2))
	second := stockRepo.addLot(freshLot(1, 5, 10, 1))

	_, err := allocator.Allocate(1, 12)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var insufficientErr *InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(1), insufficientErr.IngredientID)
	assert.InDelta(t, 12.0, insufficientErr.Requested, 1e-9)
	assert.InDelta(t, 2.0, insufficientErr.Short, 1e-9)

	assert.InDelta(t, 5.0, stockRepo.lots[first.ID].Amount, 1e-9)
	assert.InDelta(t, 5.0, stockRepo.lots[second.ID].Amount, 1e-9)
}

func TestAllocateSkipsExpiredLots(t *testing.T) {
	stockRepo, allocator := newAllocatorFixture()
	expired := freshLot(1, 100, 50, 10)
	expired.ExpiryDate = time.Now().AddDate(0, 0, -1)
	stockRepo.addLot(expired)
	fresh := stockRepo.addLot(freshLot(1, 5, 10, 1))

	lines, err := allocator.Allocate(1, 3)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, fresh.ID, lines[0].LotID)
}

func TestAllocateSkipsExhaustedLots(t *testing.T) {
	stockRepo, allocator := newAllocatorFixture()
	exhausted := freshLot(1, 0, 0, 2)
	stockRepo.addLot(exhausted)
	fresh := stockRepo.addLot(freshLot(1, 5, 10, 1))

	lines, err := allocator.Allocate(1, 5)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, fresh.ID, lines[0].LotID)
}

func TestAllocateRejectsNonPositiveAmount(t *testing.T) {
	_, allocator := newAllocatorFixture()

	_, err := allocator.Allocate(1, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = allocator.Allocate(1, -2)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAllocateNoLotsAtAll(t *testing.T) {
	_, allocator := newAllocatorFixture()

	_, err := allocator.Allocate(42, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var insufficientErr *InsufficientStockError
	require.True(t, errors.As(err, &insufficientErr))
	assert.InDelta(t, 1.0, insufficientErr.Short, 1e-9)
}
