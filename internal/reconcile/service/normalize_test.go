package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("decimal comma and latin lookalikes", func(t *testing.T) {
		assert.Equal(t, "кабель ввг 3х2.5", normalize("Кабель ВВГ 3x2,5"))
		assert.Equal(t, normalize("Кабель ВВГ 3x2.5"), normalize("Кабель ВВГ 3x2,5"))
	})

	t.Run("yo becomes ye", func(t *testing.T) {
		assert.Equal(t, "елка", normalize("Ёлка"))
	})

	t.Run("punctuation becomes space", func(t *testing.T) {
		got := normalize("Розетка!!  двойная;  белая")
		assert.Equal(t, "розетка двойная белая", got)
	})

	t.Run("synonyms map to one form", func(t *testing.T) {
		assert.Equal(t, normalize("LED"), normalize("светодиодный"))
		assert.Equal(t, normalize("автомат"), normalize("выключатель"))
		assert.Equal(t, normalize("мм2"), normalize("мм²"))
		assert.Equal(t, normalize("60 W"), normalize("60 ватт"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", normalize(""))
		assert.Equal(t, "", normalize(" !!! "))
	})
}

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(10)

	t.Run("cached result equals direct", func(t *testing.T) {
		s := "Светильник LED 36W"
		assert.Equal(t, normalize(s), n.Normalize(s))
		assert.Equal(t, normalize(s), n.Normalize(s))
		assert.Equal(t, 1, n.Len())
	})

	t.Run("tokens are sorted unique without stop words", func(t *testing.T) {
		assert.Equal(t, []string{"дома", "кабель"}, n.Tokens("кабель для дома кабель"))
		assert.Nil(t, n.Tokens(""))
	})

	t.Run("clear", func(t *testing.T) {
		n.Clear()
		assert.Equal(t, 0, n.Len())
	})
}
