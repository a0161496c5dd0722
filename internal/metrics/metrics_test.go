package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gathered(t *testing.T) map[string]float64 {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range m.GetLabel() {
				key += "/" + l.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestRegisterAndRecord(t *testing.T) {
	Register()
	Register()

	before := gathered(t)
	IncCacheHit()
	IncCacheMiss()
	IncComputations()
	AddPairsEvaluated(12)
	AddPairsMatched(3)
	ObserveBatch("sequential", 20*time.Millisecond)
	SetCacheEntries("similarity", 7)

	after := gathered(t)
	assert.Equal(t, 1.0, after["matcher_similarity_cache_lookups_total/hit"]-before["matcher_similarity_cache_lookups_total/hit"])
	assert.Equal(t, 1.0, after["matcher_similarity_computations_total"]-before["matcher_similarity_computations_total"])
	assert.Equal(t, 12.0, after["matcher_pairs_evaluated_total"]-before["matcher_pairs_evaluated_total"])
	assert.Equal(t, 3.0, after["matcher_pairs_matched_total"]-before["matcher_pairs_matched_total"])
	assert.Equal(t, 1.0, after["matcher_batch_duration_seconds/sequential"]-before["matcher_batch_duration_seconds/sequential"])
	assert.Equal(t, 7.0, after["matcher_cache_entries/similarity"])
}
