package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceListItem(t *testing.T) {
	base := PriceItemInput{ID: "P1", Name: "Кабель ВВГ 3x2.5", Price: "1 234,50", Supplier: "ЭТМ"}

	t.Run("defaults", func(t *testing.T) {
		p, err := NewPriceListItem(base)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("1234.5").Equal(p.Price()))
		assert.Equal(t, CurrencyRUB, p.Currency())
		_, ok := p.Category()
		assert.False(t, ok)
		assert.Equal(t, "1234.50 RUB", p.FormattedPrice())
	})

	t.Run("currency and category", func(t *testing.T) {
		in := base
		in.Currency, in.Category = "$", "кабель"
		p, err := NewPriceListItem(in)
		require.NoError(t, err)
		assert.Equal(t, CurrencyUSD, p.Currency())
		c, ok := p.Category()
		assert.True(t, ok)
		assert.Equal(t, CategoryCables, c)
	})

	t.Run("empty price is zero", func(t *testing.T) {
		in := base
		in.Price = ""
		p, err := NewPriceListItem(in)
		require.NoError(t, err)
		assert.True(t, p.Price().IsZero())
	})

	t.Run("half up to kopecks", func(t *testing.T) {
		in := base
		in.Price = "10.005"
		p, err := NewPriceListItem(in)
		require.NoError(t, err)
		assert.Equal(t, "10.01 RUB", p.FormattedPrice())
	})

	t.Run("negative price", func(t *testing.T) {
		in := base
		in.Price = "-10"
		_, err := NewPriceListItem(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "price cannot be negative: -10.00")
	})

	t.Run("garbage price and missing fields", func(t *testing.T) {
		_, err := NewPriceListItem(PriceItemInput{ID: "P2", Price: "n/a"})
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, []string{
			"price list item name cannot be empty",
			"supplier cannot be empty",
			`invalid price value: "n/a"`,
		}, ve.Problems)
	})

	t.Run("equality by id", func(t *testing.T) {
		a, err := NewPriceListItem(base)
		require.NoError(t, err)
		in := base
		in.Name = "Другое"
		b, err := NewPriceListItem(in)
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})
}

func TestParseCurrency(t *testing.T) {
	assert.Equal(t, CurrencyRUB, ParseCurrency("руб."))
	assert.Equal(t, CurrencyEUR, ParseCurrency(" eur "))
	assert.Equal(t, CurrencyRUB, ParseCurrency("GBP"))
}
