package service

import (
	"math"
	"strings"

	"matcher-service/internal/reconcile/model"
	"matcher-service/internal/utils"
)

// FieldScores — похожесть по каждому полю пары, все в [0..1].
type FieldScores struct {
	Name              float64
	Description       float64
	Category          float64
	Brand             float64
	Specifications    float64
	NumericCompatible bool
}

// Percentages is the diagnostic breakdown: every field ×100.
func (f FieldScores) Percentages() map[string]float64 {
	return map[string]float64{
		model.FieldName:           f.Name * 100,
		model.FieldDescription:    f.Description * 100,
		model.FieldCategory:       f.Category * 100,
		model.FieldBrand:          f.Brand * 100,
		model.FieldSpecifications: f.Specifications * 100,
	}
}

type categoryPair struct{ a, b model.Category }

// Родственные категории; порядок в ключе не важен, смотрим обе стороны.
var categoryRelations = map[categoryPair]float64{
	{model.CategoryElectrical, model.CategoryCables}:   0.7,
	{model.CategoryElectrical, model.CategorySwitches}: 0.8,
	{model.CategoryLighting, model.CategoryElectrical}: 0.6,
	{model.CategoryAutomation, model.CategorySwitches}: 0.7,
}

type textScorer interface {
	ScoreText(a, b string) float64
}

type fieldScorer struct {
	text     textScorer
	features *boundedCache[string, []string]
}

func newFieldScorer(text textScorer, capacity int) *fieldScorer {
	return &fieldScorer{
		text:     text,
		features: newBoundedCache[string, []string](capacity),
	}
}

func (f *fieldScorer) score(m *model.MaterialRecord, p *model.PriceListItem) FieldScores {
	pc, hasPC := p.Category()
	return FieldScores{
		Name:              f.text.ScoreText(m.Name(), p.Name()),
		Description:       f.text.ScoreText(m.Description(), p.Description()),
		Category:          categorySimilarity(m.Category(), true, pc, hasPC),
		Brand:             f.brandSimilarity(m.Brand(), p.Brand()),
		Specifications:    f.specsSimilarity(m, p),
		NumericCompatible: numericCompatible(f.featuresOf(m.Name()), f.featuresOf(p.Name())),
	}
}

func categorySimilarity(a model.Category, hasA bool, b model.Category, hasB bool) float64 {
	switch {
	case !hasA && !hasB:
		return 0.8
	case !hasA || !hasB:
		return 0.6
	case a == b:
		return 1.0
	}
	if v, ok := categoryRelations[categoryPair{a, b}]; ok {
		return v
	}
	if v, ok := categoryRelations[categoryPair{b, a}]; ok {
		return v
	}
	return 0.3
}

func (f *fieldScorer) brandSimilarity(a, b string) float64 {
	switch {
	case a == "" && b == "":
		return 0.8
	case a == "" || b == "":
		return 0.7
	}
	return f.text.ScoreText(a, b)
}

func (f *fieldScorer) specsSimilarity(m *model.MaterialRecord, p *model.PriceListItem) float64 {
	na, nb := m.SpecCount(), p.SpecCount()
	switch {
	case na == 0 && nb == 0:
		return 0.8
	case na == 0 || nb == 0:
		return 0.6
	}

	total, common := 0.0, 0
	for _, k := range m.SpecKeys() {
		vb, ok := p.SpecValue(k)
		if !ok {
			continue
		}
		va, _ := m.SpecValue(k)
		total += f.specValueSimilarity(va, vb)
		common++
	}
	if common == 0 {
		return 0
	}
	return total / float64(common)
}

func (f *fieldScorer) specValueSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1.0
	}
	na, okA := utils.ParseStrictFloat(a)
	nb, okB := utils.ParseStrictFloat(b)
	if okA && okB {
		return numericBand(na, nb)
	}
	return f.text.ScoreText(a, b)
}

// numericBand: ≤5% → 0.95, ≤10% → 0.80, ≤20% → 0.60, дальше линейно вниз.
func numericBand(a, b float64) float64 {
	diff := 0.0
	if hi := max(a, b); hi > 0 {
		diff = math.Abs(a-b) / hi
	}
	switch {
	case diff <= 0.05:
		return 0.95
	case diff <= 0.10:
		return 0.80
	case diff <= 0.20:
		return 0.60
	}
	return max(0, 1-diff)
}

func (f *fieldScorer) featuresOf(name string) []string {
	if v, ok := f.features.Get(name); ok {
		return v
	}
	v := numericFeatures(name)
	f.features.Put(name, v)
	return v
}
