package algorithm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// generationsTotal counts generations advanced.
	// Labels: algorithm
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "life",
		Subsystem: "algorithm",
		Name:      "generations_total",
		Help:      "Total generations advanced",
	}, []string{"algorithm"})

	// stepDuration measures the wall time of a single Step call.
	// Labels: algorithm
	stepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "life",
		Subsystem: "algorithm",
		Name:      "step_duration_seconds",
		Help:      "Duration of Step calls in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"algorithm"})

	// hashLifeCache counts result cache lookups.
	// Labels: outcome (hit, miss)
	hashLifeCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "life",
		Subsystem: "hashlife",
		Name:      "result_cache_lookups_total",
		Help:      "HashLife result cache lookups by outcome",
	}, []string{"outcome"})

	hashLifeResets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "life",
		Subsystem: "hashlife",
		Name:      "arena_resets_total",
		Help:      "Times a HashLife arena exceeded its node budget and was cleared",
	})

	hashLifeNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "life",
		Subsystem: "hashlife",
		Name:      "arena_nodes",
		Help:      "Interned nodes in the most recently used HashLife arena",
	})

	cacheHits   = hashLifeCache.WithLabelValues("hit")
	cacheMisses = hashLifeCache.WithLabelValues("miss")
)

func observeStep(algorithm string, generations int, elapsed time.Duration) {
	generationsTotal.WithLabelValues(algorithm).Add(float64(generations))
	stepDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}
