package services

import (
	"testing"
	"time"

	"teamcook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	counts    map[string]int
	purchases map[string]map[string]float64 // kind -> date (YYYY-MM-DD) -> amount
}

func (f *fakeStatsRepo) CountStockedIngredients(kind string) (int, error) {
	return f.counts[kind], nil
}

func (f *fakeStatsRepo) PurchasedAmountBetween(kind string, start, end time.Time) (float64, error) {
	return f.purchases[kind][start.Format("2006-01-02")], nil
}

func TestGetStockCounts(t *testing.T) {
	service := NewStatsService(&fakeStatsRepo{
		counts: map[string]int{
			models.IngredientKindRaw:       5,
			models.IngredientKindProcessed: 2,
		},
	})

	counts, err := service.GetStockCounts()
	require.NoError(t, err)
	assert.Equal(t, 5, counts.RawCount)
	assert.Equal(t, 2, counts.ProcessedCount)
}

func TestGetStockHistoryCoversLastSevenDays(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	service := NewStatsService(&fakeStatsRepo{
		purchases: map[string]map[string]float64{
			models.IngredientKindRaw: {
				"2025-03-04": 10,
				"2025-03-10": 3,
			},
			models.IngredientKindProcessed: {
				"2025-03-10": 1,
			},
		},
	})

	history, err := service.GetStockHistory(now)
	require.NoError(t, err)
	require.Len(t, history, StatsHistoryDays)

	// Oldest day first, today last.
	assert.Equal(t, "2025-03-04", history[0].Date)
	assert.Equal(t, "2025-03-10", history[len(history)-1].Date)

	assert.InDelta(t, 10.0, history[0].RawAmount, 1e-9)
	assert.InDelta(t, 3.0, history[len(history)-1].RawAmount, 1e-9)
	assert.InDelta(t, 1.0, history[len(history)-1].ProcessedAmount, 1e-9)
	assert.InDelta(t, 0.0, history[1].RawAmount, 1e-9)
}
