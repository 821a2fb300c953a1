package manager

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	opsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookslib",
			Name:      "ops_total",
			Help:      "Total number of finished operation attempts",
		},
		[]string{"op", "outcome"},
	)

	opDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookslib",
			Name:      "op_duration_seconds",
			Help:      "Time from trigger to settlement in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 15, 30, 60, 120},
		},
		[]string{"op"},
	)

	opsInflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "bookslib",
			Name:      "ops_inflight",
			Help:      "Pending operation attempts",
		},
		[]string{"op"},
	)

	rejectedTriggers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookslib",
			Name:      "rejected_triggers_total",
			Help:      "Triggers refused before an attempt started",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(opsTotal, opDuration, opsInflight, rejectedTriggers)
}
