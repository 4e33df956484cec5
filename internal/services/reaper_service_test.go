package services

import (
	"testing"
	"time"

	"teamcook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReaperFixture() (*fakeStockRepo, *fakeWasteRepo, ReaperService) {
	stockRepo := newFakeStockRepo()
	wasteRepo := newFakeWasteRepo()
	txManager := newFakeTxManager(stockRepo, wasteRepo)
	return stockRepo, wasteRepo, NewReaperService(stockRepo, wasteRepo, txManager)
}

func TestSweepExpiredConvertsLotsToWaste(t *testing.T) {
	stockRepo, wasteRepo, reaper := newReaperFixture()
	now := time.Now()

	expiredA := stockRepo.addLot(models.StockLot{
		IngredientID: 1, Name: "Old milk", Amount: 2, Unit: "l",
		PurchaseDate: now.AddDate(0, 0, -10), ExpiryDate: now.AddDate(0, 0, -2), Cost: 4,
	})
	expiredB := stockRepo.addLot(models.StockLot{
		IngredientID: 2, Name: "Old eggs", Amount: 12, Unit: "pcs",
		PurchaseDate: now.AddDate(0, 0, -20), ExpiryDate: now.AddDate(0, 0, -1), Cost: 6,
	})
	fresh := stockRepo.addLot(models.StockLot{
		IngredientID: 1, Name: "Fresh milk", Amount: 3, Unit: "l",
		PurchaseDate: now, ExpiryDate: now.AddDate(0, 0, 7), Cost: 6,
	})

	reaped, err := reaper.SweepExpired(now)
	require.NoError(t, err)
	assert.Equal(t, 2, reaped)

	// Expired lots are gone, the fresh one survives.
	_, err = stockRepo.GetLotByID(expiredA.ID)
	assert.Error(t, err)
	_, err = stockRepo.GetLotByID(expiredB.ID)
	assert.Error(t, err)
	_, err = stockRepo.GetLotByID(fresh.ID)
	assert.NoError(t, err)

	require.Len(t, wasteRepo.wastes, 2)
	byStockID := map[int64]models.Waste{}
	for _, w := range wasteRepo.wastes {
		byStockID[w.StockID] = w
	}
	wasteA := byStockID[expiredA.ID]
	assert.InDelta(t, 2.0, wasteA.WasteAmount, 1e-9)
	assert.Equal(t, "l", wasteA.Unit)
	require.NotNil(t, wasteA.Reason)
	assert.Equal(t, models.WasteReasonExpired, *wasteA.Reason)
	require.NotNil(t, wasteA.Notes)
	assert.Contains(t, *wasteA.Notes, "Expired on")
}

func TestSweepExpiredIsIdempotent(t *testing.T) {
	stockRepo, wasteRepo, reaper := newReaperFixture()
	now := time.Now()

	stockRepo.addLot(models.StockLot{
		IngredientID: 1, Name: "Old milk", Amount: 2, Unit: "l",
		PurchaseDate: now.AddDate(0, 0, -10), ExpiryDate: now.AddDate(0, 0, -2), Cost: 4,
	})

	reaped, err := reaper.SweepExpired(now)
	require.NoError(t, err)
	assert.Equal(t, 1, reaped)

	reaped, err = reaper.SweepExpired(now)
	require.NoError(t, err)
	assert.Equal(t, 0, reaped)
	assert.Len(t, wasteRepo.wastes, 1)
}

func TestSweepExpiredWithNothingToReap(t *testing.T) {
	stockRepo, wasteRepo, reaper := newReaperFixture()
	now := time.Now()

	stockRepo.addLot(models.StockLot{
		IngredientID: 1, Name: "Fresh milk", Amount: 3, Unit: "l",
		PurchaseDate: now, ExpiryDate: now.AddDate(0, 0, 7), Cost: 6,
	})

	reaped, err := reaper.SweepExpired(now)
	require.NoError(t, err)
	assert.Equal(t, 0, reaped)
	assert.Empty(t, wasteRepo.wastes)
	lots, _, _ := stockRepo.GetLots(models.StockFilters{})
	assert.Len(t, lots, 1)
}
