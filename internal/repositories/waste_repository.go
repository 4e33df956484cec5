package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"teamcook_backend/internal/models"
)

// WasteRepository defines the interface for waste-related database
// operations. Waste rows are append-only audit records.
type WasteRepository interface {
	CreateWaste(executor SQLExecutor, waste *models.Waste) (int64, error)
	GetWaste(page, pageSize int) ([]models.Waste, int, error)
}

type wasteRepository struct {
	db *sql.DB
}

// NewWasteRepository creates a new instance of WasteRepository.
func NewWasteRepository(db *sql.DB) WasteRepository {
	return &wasteRepository{db: db}
}

func (r *wasteRepository) CreateWaste(executor SQLExecutor, waste *models.Waste) (int64, error) {
	query := `INSERT INTO waste (stock_id, waste_amount, unit, waste_date, reason, notes)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	if waste.WasteDate.IsZero() {
		waste.WasteDate = time.Now()
	}
	err := executor.QueryRow(query,
		waste.StockID, waste.WasteAmount, waste.Unit, waste.WasteDate, waste.Reason, waste.Notes,
	).Scan(&waste.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating waste record: %v", ErrDatabaseError, err)
	}
	return waste.ID, nil
}

func (r *wasteRepository) GetWaste(page, pageSize int) ([]models.Waste, int, error) {
	waste := []models.Waste{}
	totalCount := 0
	query := `SELECT id, stock_id, waste_amount, unit, waste_date, reason, notes, COUNT(*) OVER() AS total_count
	          FROM waste
	          ORDER BY waste_date DESC, id DESC
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting waste records: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var w models.Waste
		var reason, notes sql.NullString
		if err := rows.Scan(&w.ID, &w.StockID, &w.WasteAmount, &w.Unit, &w.WasteDate, &reason, &notes, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning waste record: %v", ErrDatabaseError, err)
		}
		if reason.Valid {
			w.Reason = &reason.String
		}
		if notes.Valid {
			w.Notes = &notes.String
		}
		waste = append(waste, w)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating waste records: %v", ErrDatabaseError, err)
	}
	return waste, totalCount, nil
}
