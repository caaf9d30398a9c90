package local

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var workerDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "actor_worker_duration_ms",
	Help:    "The time it takes a local worker to run its segment of a program.",
	Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
}, []string{"success"})
