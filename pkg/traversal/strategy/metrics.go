package strategy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	strategyApplyDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "traversal_strategy_apply_duration_ms",
		Help:    "The time it takes a strategy to rewrite one traversal.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
	}, []string{"strategy", "category"})

	strategyRejectionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traversal_strategy_rejections_total",
		Help: "The total number of traversals a strategy refused to compile.",
	}, []string{"strategy"})
)
