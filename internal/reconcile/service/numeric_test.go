package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericFeatures(t *testing.T) {
	t.Run("size with either decimal separator", func(t *testing.T) {
		a := numericFeatures("Кабель ВВГ 3x2,5")
		b := numericFeatures("Кабель ВВГ 3х2.5")
		assert.Equal(t, []string{"size:3x2.5"}, a)
		assert.Equal(t, a, b)
	})

	t.Run("multiplication sign and asterisk", func(t *testing.T) {
		assert.Equal(t, []string{"size:1x70"}, numericFeatures("АВВГ 1×70"))
		assert.Equal(t, []string{"size:4x16"}, numericFeatures("ПВС 4*16"))
	})

	t.Run("value with unit", func(t *testing.T) {
		assert.Equal(t, []string{"value:16а"}, numericFeatures("Автомат 16А"))
		assert.Equal(t, numericFeatures("Лампа 60W"), numericFeatures("Лампа 60 Вт"))
		assert.Equal(t, []string{"value:220в"}, numericFeatures("Розетка 220В"))
	})

	t.Run("detached single-letter unit is a preposition", func(t *testing.T) {
		assert.Empty(t, numericFeatures("Лампа 3 в упаковке"))
		assert.Empty(t, numericFeatures("Кабель 5 а также"))
	})

	t.Run("range", func(t *testing.T) {
		assert.Contains(t, numericFeatures("Гофра 16-20 мм"), "range:16-20")
	})

	t.Run("nothing numeric", func(t *testing.T) {
		assert.Empty(t, numericFeatures("Розетка двойная"))
		assert.Empty(t, numericFeatures(""))
	})
}

func TestNumericCompatible(t *testing.T) {
	assert.True(t, numericCompatible(nil, nil))
	assert.True(t, numericCompatible(nil, []string{"size:1x70"}))
	assert.True(t, numericCompatible([]string{"size:1x70", "value:1кв"}, []string{"value:1кв"}))
	assert.False(t, numericCompatible(numericFeatures("Кабель 1×70"), numericFeatures("Кабель 1×95")))
}
