package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"matcher-service/internal/reconcile/model"
)

// Меньше этого числа пар горутины не окупаются.
const sequentialBelow = 100

type chunk struct{ lo, hi int }

// MatchBatch сравнивает каждый материал с каждой позицией прайса и возвращает
// пары с похожестью ≥ minPercent, по убыванию Quality. При равном Quality
// порядок — как во входе (материал, затем позиция).
// ctx нужен только для логов: батч всегда досчитывается до конца.
func (e *Engine) MatchBatch(ctx context.Context, materials []*model.MaterialRecord, items []*model.PriceListItem, minPercent float64) []model.SearchResult {
	log := e.loggerFrom(ctx).With().Str("batch_id", uuid.NewString()).Logger()

	pairs := len(materials) * len(items)
	if pairs == 0 {
		log.Debug().Int("materials", len(materials)).Int("items", len(items)).Msg("empty batch")
		return nil
	}

	start := time.Now()
	mode := "sequential"
	var out []model.SearchResult
	if !e.cfg.Parallel || e.workers <= 1 || pairs < sequentialBelow {
		out = e.matchChunk(materials, items, minPercent)
	} else {
		mode = "parallel"
		out = e.matchParallel(log, materials, items, minPercent)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Quality > out[j].Quality })

	dur := time.Since(start)
	e.mon.batchDone(mode, pairs, len(out), dur)
	e.publishCacheSizes()

	log.Info().
		Str("mode", mode).
		Int("materials", len(materials)).
		Int("items", len(items)).
		Int("pairs", pairs).
		Int("matched", len(out)).
		Float64("min_similarity", minPercent).
		Dur("dur", dur).
		Msg("batch matched")
	return out
}

// matchParallel: материалы режутся на непрерывные куски, каждый кусок × весь прайс
// в своей горутине. Куски склеиваются в порядке запуска, не завершения.
func (e *Engine) matchParallel(log zerolog.Logger, materials []*model.MaterialRecord, items []*model.PriceListItem, minPercent float64) []model.SearchResult {
	chunks := splitChunks(len(materials), e.workers)
	slots := make([][]model.SearchResult, len(chunks))

	var g errgroup.Group
	for i, c := range chunks {
		g.Go(func() error {
			started := time.Now()
			slots[i] = e.matchChunk(materials[c.lo:c.hi], items, minPercent)
			log.Debug().
				Int("chunk", i).
				Int("materials", c.hi-c.lo).
				Int("matched", len(slots[i])).
				Dur("dur", time.Since(started)).
				Msg("chunk done")
			return nil
		})
	}
	_ = g.Wait() // matchChunk не возвращает ошибок

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	out := make([]model.SearchResult, 0, total)
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}

func (e *Engine) matchChunk(materials []*model.MaterialRecord, items []*model.PriceListItem, minPercent float64) []model.SearchResult {
	var out []model.SearchResult
	for _, m := range materials {
		for _, p := range items {
			sim, details := e.ScorePair(m, p)
			if sim < minPercent {
				continue
			}
			r, err := model.NewSearchResult(m, p, sim, details, 0)
			if err != nil {
				// sim всегда в [0..100], сюда не попадаем
				e.log.Warn().Err(err).Str("material", m.ID()).Str("item", p.ID()).Msg("skip result")
				continue
			}
			out = append(out, r)
		}
	}
	return out
}

// splitChunks делит n на k почти равных непрерывных отрезков; k ≤ n.
func splitChunks(n, k int) []chunk {
	if n <= 0 {
		return nil
	}
	k = min(max(k, 1), n)
	out := make([]chunk, 0, k)
	size, rest := n/k, n%k
	lo := 0
	for i := 0; i < k; i++ {
		hi := lo + size
		if i < rest {
			hi++
		}
		out = append(out, chunk{lo: lo, hi: hi})
		lo = hi
	}
	return out
}
