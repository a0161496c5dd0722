package service

import "matcher-service/internal/reconcile/model"

const (
	shortcutName        = 0.95
	shortcutDescription = 0.80

	brandFloorBelow = 0.8
	brandFloor      = 0.7

	numericPenaltyAbove = 0.5
	numericPenalty      = 0.7
)

// aggregator сводит пять оценок полей в одну по весам конфигурации.
type aggregator struct {
	w model.Weights
}

// overall returns the similarity in [0..1].
func (a aggregator) overall(f FieldScores) float64 {
	if f.Name >= shortcutName && f.Description >= shortcutDescription && f.NumericCompatible {
		return 1
	}

	brand := f.Brand
	if brand < brandFloorBelow {
		brand = max(brand, brandFloor)
	}

	v := a.w.Name*f.Name +
		a.w.Description*f.Description +
		a.w.Category*f.Category +
		a.w.Brand*brand +
		a.w.Specifications*f.Specifications

	// 1×70 против 1×95 — разные товары, даже если имена почти совпали
	if !f.NumericCompatible && v > numericPenaltyAbove {
		v *= numericPenalty
	}
	return min(v, 1)
}

// percent: overall и разбивка по полям в процентах.
func (a aggregator) percent(f FieldScores) (float64, map[string]float64) {
	return a.overall(f) * 100, f.Percentages()
}
