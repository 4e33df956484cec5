package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"teamcook_backend/internal/models"
)

// SaleRepository defines the interface for sale-related database operations.
// Sales are append-only audit records; there is no update or delete.
type SaleRepository interface {
	CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error)
	GetSales(filters models.SaleFilters) ([]models.Sale, int, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (recipe_id, quantity, sale_price, sale_date, restaurant_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}
	var restaurantID sql.NullInt64
	if sale.RestaurantID != nil {
		restaurantID = sql.NullInt64{Int64: *sale.RestaurantID, Valid: true}
	}
	err := executor.QueryRow(query,
		sale.RecipeID, sale.Quantity, sale.SalePrice, sale.SaleDate, restaurantID,
	).Scan(&sale.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sale: %v", ErrDatabaseError, err)
	}
	return sale.ID, nil
}

func (r *saleRepository) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	sales := []models.Sale{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    s.id, s.recipe_id, s.quantity, s.sale_price, s.sale_date, s.restaurant_id,
	    r.name AS recipe_name, r.kind AS recipe_kind,
	    COUNT(*) OVER() AS total_count
	  FROM sales s
	  JOIN recipes r ON s.recipe_id = r.id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.RecipeID != nil {
		conditions = append(conditions, fmt.Sprintf("s.recipe_id = $%d", argCount))
		args = append(args, *filters.RecipeID)
		argCount++
	}
	if filters.RestaurantID != nil {
		conditions = append(conditions, fmt.Sprintf("s.restaurant_id = $%d", argCount))
		args = append(args, *filters.RestaurantID)
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY s.sale_date DESC, s.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sale models.Sale
		var recipe models.Recipe
		var restaurantID sql.NullInt64
		if err := rows.Scan(
			&sale.ID, &sale.RecipeID, &sale.Quantity, &sale.SalePrice, &sale.SaleDate, &restaurantID,
			&recipe.Name, &recipe.Kind,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		if restaurantID.Valid {
			sale.RestaurantID = &restaurantID.Int64
		}
		recipe.ID = sale.RecipeID
		sale.Recipe = &recipe
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating sales: %v", ErrDatabaseError, err)
	}
	return sales, totalCount, nil
}
