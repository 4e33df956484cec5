package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"teamcook_backend/internal/models"
)

// StockRepository is the stock ledger: durable storage and retrieval of
// stock lots, scoped by ingredient. LotsForAllocation and ExpiredLots lock
// the selected rows (FOR UPDATE) so that concurrent allocations and sweeps
// over the same lots are serialized by the database.
type StockRepository interface {
	CreateLot(executor SQLExecutor, lot *models.StockLot) (int64, error)
	GetLotByID(id int64) (*models.StockLot, error)
	GetLots(filters models.StockFilters) ([]models.StockLot, int, error)
	UpdateLot(executor SQLExecutor, lot *models.StockLot) error
	DeleteLot(executor SQLExecutor, id int64) error

	// LotsForAllocation returns the unexpired lots of an ingredient ordered
	// by purchase date ascending (FIFO). Expired lots are never returned,
	// which is the contract the allocator relies on.
	LotsForAllocation(executor SQLExecutor, ingredientID int64, now time.Time) ([]models.StockLot, error)

	// ApplyDeduction reduces lot.Amount by deducted and lot.Cost by the
	// charged cost, persisting both. The charged cost is computed from the
	// lot's amount before the deduction is applied:
	// charged = cost / amount_before x deducted. Returns the charged cost.
	ApplyDeduction(executor SQLExecutor, lot *models.StockLot, deducted float64) (float64, error)

	// ExpiredLots returns every lot with expiry_date <= now, locked for the
	// duration of the surrounding transaction.
	ExpiredLots(executor SQLExecutor, now time.Time) ([]models.StockLot, error)
}

type stockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new instance of StockRepository.
func NewStockRepository(db *sql.DB) StockRepository {
	return &stockRepository{db: db}
}

const stockColumns = `id, ingredient_id, name, amount, unit, purchase_date, expiry_date, cost`

func scanStockLot(s scanner, lot *models.StockLot) error {
	return s.Scan(&lot.ID, &lot.IngredientID, &lot.Name, &lot.Amount, &lot.Unit,
		&lot.PurchaseDate, &lot.ExpiryDate, &lot.Cost)
}

func (r *stockRepository) CreateLot(executor SQLExecutor, lot *models.StockLot) (int64, error) {
	query := `INSERT INTO stock (ingredient_id, name, amount, unit, purchase_date, expiry_date, cost)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	if lot.PurchaseDate.IsZero() {
		lot.PurchaseDate = time.Now()
	}
	err := executor.QueryRow(query,
		lot.IngredientID, lot.Name, lot.Amount, lot.Unit, lot.PurchaseDate, lot.ExpiryDate, lot.Cost,
	).Scan(&lot.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating stock lot: %v", ErrDatabaseError, err)
	}
	return lot.ID, nil
}

func (r *stockRepository) GetLotByID(id int64) (*models.StockLot, error) {
	lot := &models.StockLot{}
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = $1`
	err := scanStockLot(r.db.QueryRow(query, id), lot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting stock lot by ID %d: %v", ErrDatabaseError, id, err)
	}
	return lot, nil
}

func (r *stockRepository) GetLots(filters models.StockFilters) ([]models.StockLot, int, error) {
	lots := []models.StockLot{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + stockColumns + `, COUNT(*) OVER() AS total_count FROM stock`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.IngredientID != nil {
		conditions = append(conditions, fmt.Sprintf("ingredient_id = $%d", argCount))
		args = append(args, *filters.IngredientID)
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY purchase_date ASC, id ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting stock lots: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var lot models.StockLot
		if err := rows.Scan(&lot.ID, &lot.IngredientID, &lot.Name, &lot.Amount, &lot.Unit,
			&lot.PurchaseDate, &lot.ExpiryDate, &lot.Cost, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning stock lot: %v", ErrDatabaseError, err)
		}
		lots = append(lots, lot)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating stock lots: %v", ErrDatabaseError, err)
	}
	return lots, totalCount, nil
}

func (r *stockRepository) UpdateLot(executor SQLExecutor, lot *models.StockLot) error {
	query := `UPDATE stock
	          SET ingredient_id = $1, name = $2, amount = $3, unit = $4,
	              purchase_date = $5, expiry_date = $6, cost = $7
	          WHERE id = $8`
	result, err := executor.Exec(query,
		lot.IngredientID, lot.Name, lot.Amount, lot.Unit, lot.PurchaseDate, lot.ExpiryDate, lot.Cost, lot.ID)
	if err != nil {
		return fmt.Errorf("%w: updating stock lot ID %d: %v", ErrDatabaseError, lot.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stockRepository) DeleteLot(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM stock WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting stock lot ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stockRepository) LotsForAllocation(executor SQLExecutor, ingredientID int64, now time.Time) ([]models.StockLot, error) {
	query := `SELECT ` + stockColumns + `
	          FROM stock
	          WHERE ingredient_id = $1 AND expiry_date > $2
	          ORDER BY purchase_date ASC, id ASC
	          FOR UPDATE`
	rows, err := executor.Query(query, ingredientID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: getting lots for allocation (ingredient %d): %v", ErrDatabaseError, ingredientID, err)
	}
	defer rows.Close()

	lots := []models.StockLot{}
	for rows.Next() {
		var lot models.StockLot
		if err := scanStockLot(rows, &lot); err != nil {
			return nil, fmt.Errorf("%w: scanning lot for allocation: %v", ErrDatabaseError, err)
		}
		lots = append(lots, lot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating lots for allocation: %v", ErrDatabaseError, err)
	}
	return lots, nil
}

func (r *stockRepository) ApplyDeduction(executor SQLExecutor, lot *models.StockLot, deducted float64) (float64, error) {
	if deducted <= 0 {
		return 0, fmt.Errorf("%w: deduction must be positive, got %f", ErrDatabaseError, deducted)
	}
	if deducted > lot.Amount {
		return 0, fmt.Errorf("%w: deduction %f exceeds remaining amount %f on lot %d", ErrDatabaseError, deducted, lot.Amount, lot.ID)
	}

	// Unit cost must come from the amount before the deduction is applied.
	unitCost := 0.0
	if lot.Amount > 0 {
		unitCost = lot.Cost / lot.Amount
	}
	charged := unitCost * deducted

	newAmount := lot.Amount - deducted
	newCost := lot.Cost - charged

	result, err := executor.Exec(`UPDATE stock SET amount = $1, cost = $2 WHERE id = $3`, newAmount, newCost, lot.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: applying deduction to stock lot ID %d: %v", ErrDatabaseError, lot.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}

	lot.Amount = newAmount
	lot.Cost = newCost
	return charged, nil
}

func (r *stockRepository) ExpiredLots(executor SQLExecutor, now time.Time) ([]models.StockLot, error) {
	query := `SELECT ` + stockColumns + `
	          FROM stock
	          WHERE expiry_date <= $1
	          ORDER BY expiry_date ASC, id ASC
	          FOR UPDATE`
	rows, err := executor.Query(query, now)
	if err != nil {
		return nil, fmt.Errorf("%w: getting expired lots: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	lots := []models.StockLot{}
	for rows.Next() {
		var lot models.StockLot
		if err := scanStockLot(rows, &lot); err != nil {
			return nil, fmt.Errorf("%w: scanning expired lot: %v", ErrDatabaseError, err)
		}
		lots = append(lots, lot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating expired lots: %v", ErrDatabaseError, err)
	}
	return lots, nil
}
