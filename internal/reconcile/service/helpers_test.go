package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"matcher-service/internal/reconcile/model"
)

func newTestEngine(t *testing.T, opts ...func(*model.EngineConfig)) *Engine {
	t.Helper()
	cfg := model.DefaultEngineConfig()
	for _, o := range opts {
		o(&cfg)
	}
	e, err := NewEngine(cfg, zerolog.Nop())
	require.NoError(t, err)
	return e
}

func newMat(t *testing.T, id, name, desc, category string) *model.MaterialRecord {
	t.Helper()
	m, err := model.NewMaterial(model.MaterialInput{ID: id, Name: name, Description: desc, Category: category})
	require.NoError(t, err)
	return m
}

func newItem(t *testing.T, id, name, desc, category string) *model.PriceListItem {
	t.Helper()
	p, err := model.NewPriceListItem(model.PriceItemInput{
		ID: id, Name: name, Description: desc, Category: category,
		Price: "100", Supplier: "ЭТМ",
	})
	require.NoError(t, err)
	return p
}
