package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values shared by the counters below.
const (
	ResultOK           = "ok"
	ResultInsufficient = "insufficient_stock"
	ResultError        = "error"
)

var (
	// AllocationsTotal counts stock allocation attempts by outcome.
	AllocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teamcook_stock_allocations_total",
		Help: "Stock allocation attempts, labeled by outcome.",
	}, []string{"result"})

	// AllocatedLots counts individual lot deductions performed by
	// successful allocations.
	AllocatedLots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamcook_allocated_lots_total",
		Help: "Stock lots deducted from by successful allocations.",
	})

	// RecipeExecutionsTotal counts recipe executions by recipe kind and outcome.
	RecipeExecutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teamcook_recipe_executions_total",
		Help: "Recipe executions, labeled by recipe kind and outcome.",
	}, []string{"kind", "result"})

	// ReapedLotsTotal counts expired stock lots converted to waste records.
	ReapedLotsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamcook_reaped_lots_total",
		Help: "Expired stock lots converted to waste records by the reaper.",
	})

	// ReaperSweepsTotal counts reaper sweeps by outcome.
	ReaperSweepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teamcook_reaper_sweeps_total",
		Help: "Expiry reaper sweeps, labeled by outcome.",
	}, []string{"result"})
)
