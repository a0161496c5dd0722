package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"matcher-service/internal/metrics"
	"matcher-service/internal/reconcile/model"
)

// Engine — движок сопоставления материалов и позиций прайса.
// Конфигурация неизменна после NewEngine; методы безопасны для параллельных вызовов.
type Engine struct {
	cfg     model.EngineConfig
	log     zerolog.Logger
	workers int

	norm   *Normalizer
	cache  *SimilarityCache
	bank   *algorithmBank
	fields *fieldScorer
	agg    aggregator
	mon    monitor
}

func NewEngine(cfg model.EngineConfig, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	algos := cfg.EffectiveAlgorithms()
	cfg.Algorithms = algos

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	e := &Engine{
		cfg:     cfg,
		log:     logger.With().Str("component", "engine").Logger(),
		workers: workers,
		norm:    NewNormalizer(cfg.CacheSize),
		cache:   NewSimilarityCache(cfg.CacheSize),
		agg:     aggregator{w: cfg.Weights},
	}
	e.bank = newAlgorithmBank(e.norm, algos)
	e.fields = newFieldScorer(e, cfg.CacheSize)

	metrics.Register()

	e.log.Info().
		Str("strategy", string(cfg.Strategy)).
		Interface("algorithms", algos).
		Interface("weights", cfg.Weights).
		Float64("min_similarity", cfg.MinSimilarity).
		Int("workers", workers).
		Int("cache_size", cfg.CacheSize).
		Bool("parallel", cfg.Parallel).
		Msg("engine ready")
	return e, nil
}

func (e *Engine) Config() model.EngineConfig { return e.cfg }

// MinSimilarity — порог по умолчанию, в процентах.
func (e *Engine) MinSimilarity() float64 { return e.cfg.MinSimilarity }

// ScoreText — похожесть двух сырых строк в [0..1], через кеш.
// Пустая строка с любой стороны даёт 0.
func (e *Engine) ScoreText(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if v, ok := e.cache.Get(a, b); ok {
		e.mon.cacheHit()
		return v
	}
	e.mon.cacheMiss()

	start := time.Now()
	v := e.computeText(newPairKey(a, b))
	e.mon.computed(time.Since(start))

	e.cache.Put(a, b, v)
	return v
}

// computeText всегда работает с упорядоченной парой, поэтому результат
// не зависит от порядка аргументов.
func (e *Engine) computeText(k pairKey) float64 {
	if k.lo == k.hi {
		return 1
	}
	na, nb := e.norm.Normalize(k.lo), e.norm.Normalize(k.hi)
	if na == "" || nb == "" {
		return 0
	}
	return e.bank.combined(na, nb)
}

// ScorePair: общая похожесть в процентах и разбивка по полям (тоже в процентах).
func (e *Engine) ScorePair(m *model.MaterialRecord, p *model.PriceListItem) (float64, map[string]float64) {
	return e.agg.percent(e.fields.score(m, p))
}

// FieldScores exposes the raw per-field scores of a pair.
func (e *Engine) FieldScores(m *model.MaterialRecord, p *model.PriceListItem) FieldScores {
	return e.fields.score(m, p)
}

func (e *Engine) Stats() model.Stats {
	return model.Stats{
		CacheHitRate:             e.mon.hitRate(),
		TotalComputations:        e.mon.computations.Load(),
		AverageComputationTimeMs: e.mon.avgComputationMs(),
		TotalTimeMs:              float64(e.mon.batchNanos.Load()) / float64(time.Millisecond),
		CacheSize:                e.cache.Len(),
		NormalizationCacheSize:   e.norm.Len(),
		FeatureCacheSize:         e.fields.features.Len(),
		Batches:                  e.mon.batches.Load(),
		PairsEvaluated:           e.mon.pairs.Load(),
	}
}

// ClearCaches сбрасывает все кеши. Счётчики статистики сохраняются.
func (e *Engine) ClearCaches() {
	e.cache.Clear()
	e.norm.Clear()
	e.fields.features.Clear()
	e.publishCacheSizes()
	e.log.Info().Msg("all caches cleared")
}

func (e *Engine) publishCacheSizes() {
	metrics.SetCacheEntries("similarity", e.cache.Len())
	metrics.SetCacheEntries("normalization", e.norm.Len())
	metrics.SetCacheEntries("features", e.fields.features.Len())
}

// loggerFrom prefers a request-scoped logger put into ctx by the caller.
func (e *Engine) loggerFrom(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l.With().Str("component", "engine").Logger()
	}
	return e.log
}
