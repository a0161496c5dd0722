package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "matcher"

var (
	registerOnce sync.Once

	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "similarity_cache_lookups_total",
		Help:      "Similarity cache lookups by result (hit|miss)",
	}, []string{"result"})
	computations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "similarity_computations_total",
		Help:      "Text similarity computations that missed the cache",
	})
	pairsEvaluated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pairs_evaluated_total",
		Help:      "Material/price item pairs scored",
	})
	pairsMatched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pairs_matched_total",
		Help:      "Pairs that passed the similarity threshold",
	})
	batchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_duration_seconds",
		Help:      "Histogram of batch durations in seconds by mode",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms .. ~10s
	}, []string{"mode"})
	cacheEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_entries",
		Help:      "Current number of cached entries by cache",
	}, []string{"cache"})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(cacheLookups, computations, pairsEvaluated, pairsMatched, batchDuration, cacheEntries)
	})
}

func IncCacheHit()            { cacheLookups.WithLabelValues("hit").Inc() }
func IncCacheMiss()           { cacheLookups.WithLabelValues("miss").Inc() }
func IncComputations()        { computations.Inc() }
func AddPairsEvaluated(n int) { pairsEvaluated.Add(float64(n)) }
func AddPairsMatched(n int)   { pairsMatched.Add(float64(n)) }
func ObserveBatch(mode string, d time.Duration) {
	batchDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// Gauges
func SetCacheEntries(cache string, n int) { cacheEntries.WithLabelValues(cache).Set(float64(n)) }
