package model

import (
	"fmt"
	"math"
	"slices"
)

// Algorithm tags one pairwise text similarity function.
type Algorithm string

const (
	AlgoFuzzyRatio      Algorithm = "fuzzy_ratio"
	AlgoTokenSort       Algorithm = "token_sort"
	AlgoTokenSet        Algorithm = "token_set"
	AlgoSequenceMatcher Algorithm = "sequence_matcher"
	AlgoSemantic        Algorithm = "semantic"
)

var allAlgorithms = []Algorithm{AlgoFuzzyRatio, AlgoTokenSort, AlgoTokenSet, AlgoSequenceMatcher, AlgoSemantic}

// Strategy selects the default algorithm subset.
type Strategy string

const (
	StrategyExact    Strategy = "exact"
	StrategyFuzzy    Strategy = "fuzzy"
	StrategySemantic Strategy = "semantic"
	StrategyHybrid   Strategy = "hybrid"
)

var strategyAlgorithms = map[Strategy][]Algorithm{
	StrategyExact:    {AlgoFuzzyRatio},
	StrategyFuzzy:    {AlgoFuzzyRatio, AlgoTokenSort, AlgoTokenSet, AlgoSequenceMatcher},
	StrategySemantic: {AlgoSemantic, AlgoTokenSet},
	StrategyHybrid:   {AlgoFuzzyRatio, AlgoTokenSort, AlgoSemantic},
}

const weightTolerance = 0.001

// Weights of the five fields in the overall score. Must sum to 1.
type Weights struct {
	Name           float64 `json:"name" mapstructure:"name"`
	Description    float64 `json:"description" mapstructure:"description"`
	Category       float64 `json:"category" mapstructure:"category"`
	Brand          float64 `json:"brand" mapstructure:"brand"`
	Specifications float64 `json:"specifications" mapstructure:"specifications"`
}

func DefaultWeights() Weights {
	return Weights{Name: 0.4, Description: 0.2, Category: 0.15, Brand: 0.15, Specifications: 0.1}
}

func (w Weights) Sum() float64 {
	return w.Name + w.Description + w.Category + w.Brand + w.Specifications
}

// EngineConfig is fixed for the lifetime of an engine.
type EngineConfig struct {
	Weights       Weights     `json:"weights"`
	Algorithms    []Algorithm `json:"algorithms,omitempty"` // пусто — набор по Strategy
	Strategy      Strategy    `json:"strategy"`
	MinSimilarity float64     `json:"min_similarity"` // проценты
	Workers       int         `json:"workers"`        // <=0 — по числу CPU
	CacheSize     int         `json:"cache_size"`
	Parallel      bool        `json:"parallel"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Weights:       DefaultWeights(),
		Strategy:      StrategyHybrid,
		MinSimilarity: 30,
		Workers:       4,
		CacheSize:     1000,
		Parallel:      true,
	}
}

func (c EngineConfig) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"weights.name": w.Name, "weights.description": w.Description, "weights.category": w.Category,
		"weights.brand": w.Brand, "weights.specifications": w.Specifications,
	} {
		if v < 0 || math.IsNaN(v) {
			return &ConfigurationError{Field: name, Reason: fmt.Sprintf("must be non-negative, got %v", v)}
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return &ConfigurationError{Field: "weights", Reason: fmt.Sprintf("must sum to 1.0, got %.4f", sum)}
	}
	if _, ok := strategyAlgorithms[c.Strategy]; !ok {
		return &ConfigurationError{Field: "strategy", Reason: fmt.Sprintf("unknown strategy %q", c.Strategy)}
	}
	for _, a := range c.Algorithms {
		if !slices.Contains(allAlgorithms, a) {
			return &ConfigurationError{Field: "algorithms", Reason: fmt.Sprintf("unknown algorithm %q", a)}
		}
	}
	if math.IsNaN(c.MinSimilarity) || c.MinSimilarity < 0 || c.MinSimilarity > 100 {
		return &ConfigurationError{Field: "min_similarity", Reason: fmt.Sprintf("must be within 0-100, got %v", c.MinSimilarity)}
	}
	if c.CacheSize < 0 {
		return &ConfigurationError{Field: "cache_size", Reason: "must not be negative"}
	}
	return nil
}

// EffectiveAlgorithms: explicit list wins, otherwise the strategy's set. Duplicates dropped.
func (c EngineConfig) EffectiveAlgorithms() []Algorithm {
	src := c.Algorithms
	if len(src) == 0 {
		src = strategyAlgorithms[c.Strategy]
	}
	out := make([]Algorithm, 0, len(src))
	for _, a := range src {
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}

// ParseAlgorithms converts config strings; validation happens in Validate.
func ParseAlgorithms(names []string) []Algorithm {
	out := make([]Algorithm, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, Algorithm(n))
		}
	}
	return out
}
