package service

import (
	"math"

	"matcher-service/internal/reconcile/model"
)

// TopMatches оставляет не больше n результатов на материал, сохраняя порядок.
// Материал определяется по Key(): одинаковый код с разными именами — разные материалы.
// n <= 0 — без ограничения.
func TopMatches(results []model.SearchResult, n int) []model.SearchResult {
	if n <= 0 {
		return results
	}
	seen := make(map[string]int)
	out := make([]model.SearchResult, 0, len(results))
	for _, r := range results {
		k := r.Material.Key()
		if seen[k] >= n {
			continue
		}
		seen[k]++
		out = append(out, r)
	}
	return out
}

// GroupByMaterial — результаты каждого материала в исходном (ранжированном) порядке,
// ключ — MaterialRecord.Key().
func GroupByMaterial(results []model.SearchResult) map[string][]model.SearchResult {
	out := make(map[string][]model.SearchResult)
	for _, r := range results {
		k := r.Material.Key()
		out[k] = append(out[k], r)
	}
	return out
}

// Summarize — сводка по каждому материалу в порядке входа: лучшее совпадение
// (первое в ранжированном списке) и число найденных.
func Summarize(materials []*model.MaterialRecord, results []model.SearchResult) []model.Summary {
	byMat := GroupByMaterial(results)
	out := make([]model.Summary, 0, len(materials))
	for _, m := range materials {
		s := model.Summary{
			MaterialID:       m.ID(),
			MaterialName:     m.Name(),
			MaterialCategory: m.Category(),
		}
		if rs := byMat[m.Key()]; len(rs) > 0 {
			best := rs[0]
			s.BestMatchFound = true
			s.BestMatchSimilarity = best.Similarity
			s.BestMatchItemName = best.PriceItem.Name()
			s.BestMatchSupplier = best.PriceItem.Supplier()
			s.BestMatchPrice = best.PriceItem.FormattedPrice()
			s.BestMatchHighConfidence = best.HighConfidence()
			s.TotalMatchesFound = len(rs)
		}
		out = append(out, s)
	}
	return out
}

// Statistics — агрегаты по прогону.
func Statistics(materials []*model.MaterialRecord, results []model.SearchResult) model.Statistics {
	byMat := GroupByMaterial(results)

	st := model.Statistics{TotalMaterials: len(materials)}
	for _, m := range materials {
		if len(byMat[m.Key()]) > 0 {
			st.MaterialsWithMatches++
		}
	}
	st.MaterialsWithoutMatches = st.TotalMaterials - st.MaterialsWithMatches
	st.TotalMatches = len(results)
	if st.TotalMaterials > 0 {
		st.MatchRate = round2(float64(st.MaterialsWithMatches) / float64(st.TotalMaterials) * 100)
		st.AverageMatchesPerMaterial = round2(float64(st.TotalMatches) / float64(st.TotalMaterials))
	}

	if len(results) == 0 {
		return st
	}
	sum, lo, hi := 0.0, math.Inf(1), math.Inf(-1)
	for _, r := range results {
		sum += r.Similarity
		lo = min(lo, r.Similarity)
		hi = max(hi, r.Similarity)
		if r.HighConfidence() {
			st.HighConfidenceMatches++
		}
		if r.Perfect() {
			st.PerfectMatches++
		}
	}
	st.AverageSimilarity = round2(sum / float64(len(results)))
	st.MinSimilarity = lo
	st.MaxSimilarity = hi
	return st
}
