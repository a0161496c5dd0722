package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matcher-service/internal/reconcile/model"
)

type pairID struct{ m, p string }

func idsOf(rs []model.SearchResult) []pairID {
	out := make([]pairID, 0, len(rs))
	for _, r := range rs {
		out = append(out, pairID{r.Material.ID(), r.PriceItem.ID()})
	}
	return out
}

func catalog(t *testing.T, nMat, nItem int) ([]*model.MaterialRecord, []*model.PriceListItem) {
	t.Helper()
	names := []string{
		"Кабель ВВГнг 3x%d", "Провод ПВС 2x%d", "Автомат %dА", "Лампа %d Вт", "Гофротруба %d мм",
	}
	var ms []*model.MaterialRecord
	for i := 0; i < nMat; i++ {
		name := fmt.Sprintf(names[i%len(names)], 1+i%4)
		ms = append(ms, newMat(t, fmt.Sprintf("M%d", i), name, name+" для монтажа", ""))
	}
	var ps []*model.PriceListItem
	for i := 0; i < nItem; i++ {
		name := fmt.Sprintf(names[(i+2)%len(names)], 1+i%3)
		ps = append(ps, newItem(t, fmt.Sprintf("P%d", i), name, "", ""))
	}
	return ms, ps
}

func TestMatchBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("exact pairs", func(t *testing.T) {
		e := newTestEngine(t)
		src := []struct{ name, desc, cat string }{
			{"Кабель ВВГнг 3x2.5", "Силовой медный кабель", "cables"},
			{"Автоматический выключатель 16А", "Модульный автомат защиты", "automation"},
			{"Светильник светодиодный 36Вт", "Потолочный светильник", "lighting"},
		}
		var ms []*model.MaterialRecord
		var ps []*model.PriceListItem
		for i, s := range src {
			ms = append(ms, newMat(t, fmt.Sprintf("M%d", i), s.name, s.desc, s.cat))
			ps = append(ps, newItem(t, fmt.Sprintf("P%d", i), s.name, s.desc, s.cat))
		}

		res := e.MatchBatch(ctx, ms, ps, 50)
		require.Len(t, res, 3)
		for _, r := range res {
			assert.GreaterOrEqual(t, r.Similarity, 95.0)
			assert.Equal(t, r.Material.ID()[1:], r.PriceItem.ID()[1:])
		}
	})

	t.Run("sorted by quality", func(t *testing.T) {
		e := newTestEngine(t)
		ms, ps := catalog(t, 15, 12)
		res := e.MatchBatch(ctx, ms, ps, 0)
		require.Len(t, res, 15*12)
		for i := 1; i < len(res); i++ {
			assert.GreaterOrEqual(t, res[i-1].Quality, res[i].Quality)
		}
	})

	t.Run("lower threshold keeps everything", func(t *testing.T) {
		e := newTestEngine(t)
		ms, ps := catalog(t, 10, 10)
		strict := idsOf(e.MatchBatch(ctx, ms, ps, 60))
		loose := idsOf(e.MatchBatch(ctx, ms, ps, 30))
		assert.GreaterOrEqual(t, len(loose), len(strict))
		for _, id := range strict {
			assert.Contains(t, loose, id)
		}
	})

	t.Run("parallel equals sequential", func(t *testing.T) {
		ms, ps := catalog(t, 13, 11)
		par := newTestEngine(t, func(c *model.EngineConfig) { c.Workers = 4 })
		seq := newTestEngine(t, func(c *model.EngineConfig) { c.Parallel = false })

		a := par.MatchBatch(ctx, ms, ps, 20)
		b := seq.MatchBatch(ctx, ms, ps, 20)
		require.Equal(t, idsOf(b), idsOf(a))
		for i := range a {
			assert.Equal(t, b[i].Similarity, a[i].Similarity)
			assert.Equal(t, b[i].Quality, a[i].Quality)
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		e := newTestEngine(t, func(c *model.EngineConfig) { c.Workers = 3 })
		var ms []*model.MaterialRecord
		for i := 0; i < 25; i++ {
			ms = append(ms, newMat(t, fmt.Sprintf("M%02d", i), "Розетка двойная", "Розетка с заземлением", ""))
		}
		var ps []*model.PriceListItem
		for i := 0; i < 4; i++ {
			ps = append(ps, newItem(t, fmt.Sprintf("P%d", i), "Розетка двойная", "Розетка с заземлением", ""))
		}

		res := e.MatchBatch(ctx, ms, ps, 0)
		require.Len(t, res, 100)
		var want []pairID
		for _, m := range ms {
			for _, p := range ps {
				want = append(want, pairID{m.ID(), p.ID()})
			}
		}
		assert.Equal(t, want, idsOf(res))
	})

	t.Run("empty input", func(t *testing.T) {
		e := newTestEngine(t)
		ms, _ := catalog(t, 2, 0)
		assert.Empty(t, e.MatchBatch(ctx, ms, nil, 0))
		assert.Equal(t, int64(0), e.Stats().Batches)
	})

	t.Run("stats count pairs", func(t *testing.T) {
		e := newTestEngine(t)
		ms, ps := catalog(t, 3, 4)
		e.MatchBatch(ctx, ms, ps, 0)
		st := e.Stats()
		assert.Equal(t, int64(1), st.Batches)
		assert.Equal(t, int64(12), st.PairsEvaluated)
	})
}

func TestSplitChunks(t *testing.T) {
	assert.Equal(t, []chunk{{0, 4}, {4, 7}, {7, 10}}, splitChunks(10, 3))
	assert.Equal(t, []chunk{{0, 1}, {1, 2}}, splitChunks(2, 8))
	assert.Equal(t, []chunk{{0, 5}}, splitChunks(5, 0))
	assert.Nil(t, splitChunks(0, 4))
}
