package services

import (
	"context"
	"fmt"
	"time"

	"teamcook_backend/internal/metrics"
	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
	"teamcook_backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

// ReaperService converts expired stock lots into waste records. A sweep is
// one transaction: every expired lot becomes a Waste row and is deleted from
// the ledger, or nothing happens and the next tick retries.
type ReaperService interface {
	SweepExpired(now time.Time) (int, error)
	Run(ctx context.Context, interval time.Duration)
}

type reaperService struct {
	stockRepo repositories.StockRepository
	wasteRepo repositories.WasteRepository
	txManager repositories.TxManager
}

// NewReaperService creates a new instance of ReaperService.
func NewReaperService(
	stockRepo repositories.StockRepository,
	wasteRepo repositories.WasteRepository,
	txManager repositories.TxManager,
) ReaperService {
	return &reaperService{stockRepo: stockRepo, wasteRepo: wasteRepo, txManager: txManager}
}

func (s *reaperService) SweepExpired(now time.Time) (int, error) {
	reaped := 0
	err := s.txManager.WithinTx(func(executor repositories.SQLExecutor) error {
		expired, err := s.stockRepo.ExpiredLots(executor, now)
		if err != nil {
			return fmt.Errorf("fetching expired lots: %w", err)
		}

		for _, lot := range expired {
			waste := &models.Waste{
				StockID:     lot.ID,
				WasteAmount: lot.Amount,
				Unit:        lot.Unit,
				WasteDate:   now,
				Reason:      utils.NewNullString(models.WasteReasonExpired),
				Notes:       utils.NewNullString(fmt.Sprintf("Expired on %s", lot.ExpiryDate.Format(time.RFC3339))),
			}
			if _, err := s.wasteRepo.CreateWaste(executor, waste); err != nil {
				return fmt.Errorf("recording waste for lot %d: %w", lot.ID, err)
			}
			if err := s.stockRepo.DeleteLot(executor, lot.ID); err != nil {
				return fmt.Errorf("removing expired lot %d: %w", lot.ID, err)
			}
			reaped++
		}
		return nil
	})
	if err != nil {
		metrics.ReaperSweepsTotal.WithLabelValues(metrics.ResultError).Inc()
		return 0, err
	}

	metrics.ReaperSweepsTotal.WithLabelValues(metrics.ResultOK).Inc()
	metrics.ReapedLotsTotal.Add(float64(reaped))
	if reaped > 0 {
		log.Info().Int("reaped", reaped).Msg("Removed expired stock lots and recorded waste")
	} else {
		log.Debug().Msg("No expired stock lots found")
	}
	return reaped, nil
}

// Run sweeps on every tick until the context is cancelled. Sweep failures
// are logged; the sweep is retried wholesale on the next tick.
func (s *reaperService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Str("interval", interval.String()).Msg("Expiry reaper started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Expiry reaper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepExpired(time.Now()); err != nil {
				log.Error().Err(err).Msg("Expiry sweep failed")
			}
		}
	}
}
