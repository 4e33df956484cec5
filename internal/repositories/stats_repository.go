package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// StatsRepository serves the read-only aggregate queries behind the stats
// endpoints.
type StatsRepository interface {
	// CountStockedIngredients counts distinct ingredients of the given kind
	// that currently have at least one stock lot.
	CountStockedIngredients(kind string) (int, error)

	// PurchasedAmountBetween sums the amount of stock purchased in
	// [start, end) for ingredients of the given kind.
	PurchasedAmountBetween(kind string, start, end time.Time) (float64, error)
}

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountStockedIngredients(kind string) (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT s.ingredient_id)
	          FROM stock s
	          JOIN ingredients i ON s.ingredient_id = i.id
	          WHERE i.kind = $1`
	if err := r.db.QueryRow(query, kind).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting stocked %s ingredients: %v", ErrDatabaseError, kind, err)
	}
	return count, nil
}

func (r *statsRepository) PurchasedAmountBetween(kind string, start, end time.Time) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(s.amount), 0)
	          FROM stock s
	          JOIN ingredients i ON s.ingredient_id = i.id
	          WHERE i.kind = $1 AND s.purchase_date >= $2 AND s.purchase_date < $3`
	if err := r.db.QueryRow(query, kind, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing purchased %s amount: %v", ErrDatabaseError, kind, err)
	}
	return total, nil
}
