package model

import (
	"fmt"
	"math"
)

// Field names of the per-field breakdown.
const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldBrand          = "brand"
	FieldSpecifications = "specifications"
)

// SearchResult — одна сопоставленная пара материал/позиция прайса.
// Confidence и Quality считаются один раз в NewSearchResult.
type SearchResult struct {
	Material   *MaterialRecord    `json:"material"`
	PriceItem  *PriceListItem     `json:"price_item"`
	Similarity float64            `json:"similarity_percentage"`
	Details    map[string]float64 `json:"similarity_details"`
	Relevance  float64            `json:"relevance_score"`
	Confidence float64            `json:"match_confidence"`
	Quality    float64            `json:"quality_score"`
}

func NewSearchResult(m *MaterialRecord, p *PriceListItem, similarity float64, details map[string]float64, relevance float64) (SearchResult, error) {
	if math.IsNaN(similarity) || similarity < 0 || similarity > 100 {
		return SearchResult{}, fmt.Errorf("similarity percentage must be 0-100, got: %v", similarity)
	}
	if math.IsNaN(relevance) || relevance < 0 {
		return SearchResult{}, fmt.Errorf("relevance score cannot be negative: %v", relevance)
	}

	confidence := math.Min(similarity/100+math.Min(relevance/10, 0.3), 1)
	quality := similarity*0.6 + math.Min(relevance*10, 30)*0.3 + confidence*100*0.1

	d := make(map[string]float64, len(details))
	for k, v := range details {
		d[k] = v
	}
	return SearchResult{
		Material:   m,
		PriceItem:  p,
		Similarity: similarity,
		Details:    d,
		Relevance:  relevance,
		Confidence: confidence,
		Quality:    quality,
	}, nil
}

// HighConfidence: similarity ≥ 85% and confidence ≥ 0.8.
func (r SearchResult) HighConfidence() bool {
	return r.Similarity >= 85 && r.Confidence >= 0.8
}

func (r SearchResult) Perfect() bool { return r.Similarity >= 99 }

type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradeWeak      Grade = "weak"
	GradePoor      Grade = "poor"
)

func (r SearchResult) Grade() Grade {
	switch {
	case r.Quality >= 90:
		return GradeExcellent
	case r.Quality >= 75:
		return GradeGood
	case r.Quality >= 60:
		return GradeFair
	case r.Quality >= 40:
		return GradeWeak
	default:
		return GradePoor
	}
}
