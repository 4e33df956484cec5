package services

import (
	"fmt"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
)

// SaleService serves the read side of the sales ledger. Sales are written
// only by full recipe execution; there is no manual create.
type SaleService interface {
	GetSales(filters models.SaleFilters) ([]models.Sale, int, error)
}

type saleService struct {
	saleRepo repositories.SaleRepository
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(saleRepo repositories.SaleRepository) SaleService {
	return &saleService{saleRepo: saleRepo}
}

func (s *saleService) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	sales, totalCount, err := s.saleRepo.GetSales(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get sales: %w", err)
	}
	return sales, totalCount, nil
}
