package service

import (
	"math"
	"sync/atomic"
	"time"

	"matcher-service/internal/metrics"
)

// monitor — счётчики движка. Читаются без блокировок, снимок может
// немного отставать от идущего батча.
type monitor struct {
	hits         atomic.Int64
	misses       atomic.Int64
	computations atomic.Int64
	computeNanos atomic.Int64
	batchNanos   atomic.Int64
	batches      atomic.Int64
	pairs        atomic.Int64
}

func (m *monitor) cacheHit() {
	m.hits.Add(1)
	metrics.IncCacheHit()
}

func (m *monitor) cacheMiss() {
	m.misses.Add(1)
	metrics.IncCacheMiss()
}

func (m *monitor) computed(d time.Duration) {
	m.computations.Add(1)
	m.computeNanos.Add(int64(d))
	metrics.IncComputations()
}

func (m *monitor) batchDone(mode string, pairs, matched int, d time.Duration) {
	m.batches.Add(1)
	m.pairs.Add(int64(pairs))
	m.batchNanos.Add(int64(d))
	metrics.AddPairsEvaluated(pairs)
	metrics.AddPairsMatched(matched)
	metrics.ObserveBatch(mode, d)
}

// hitRate in percent, 2 decimals.
func (m *monitor) hitRate() float64 {
	h, ms := m.hits.Load(), m.misses.Load()
	if h+ms == 0 {
		return 0
	}
	return round2(float64(h) / float64(h+ms) * 100)
}

// avgComputationMs rounds to microseconds.
func (m *monitor) avgComputationMs() float64 {
	n := m.computations.Load()
	if n == 0 {
		return 0
	}
	ms := float64(m.computeNanos.Load()) / float64(n) / float64(time.Millisecond)
	return math.Round(ms*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
