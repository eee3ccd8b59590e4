package temporal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ticksTotal counts driver ticks.
	// Labels: outcome (committed, discarded, superseded)
	ticksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "life",
		Subsystem: "temporal",
		Name:      "ticks_total",
		Help:      "Driver ticks by outcome",
	}, []string{"outcome"})

	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "life",
		Subsystem: "temporal",
		Name:      "tick_compute_seconds",
		Help:      "Time spent advancing the board in one tick",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	measuredRate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "life",
		Subsystem: "temporal",
		Name:      "generations_per_second",
		Help:      "Most recently measured generations per second of a running state",
	})

	activeDrivers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "life",
		Subsystem: "temporal",
		Name:      "active_drivers",
		Help:      "Run loops currently attached to a state",
	})

	ticksCommitted  = ticksTotal.WithLabelValues("committed")
	ticksDiscarded  = ticksTotal.WithLabelValues("discarded")
	ticksSuperseded = ticksTotal.WithLabelValues("superseded")
)
