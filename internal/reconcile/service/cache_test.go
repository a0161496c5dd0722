package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedCache(t *testing.T) {
	c := newBoundedCache[string, int](2)

	assert.True(t, c.Put("a", 1))
	assert.True(t, c.Put("b", 2))
	assert.False(t, c.Put("c", 3), "full cache must refuse new keys")
	assert.False(t, c.Put("a", 10), "existing entry is kept")

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = c.Get("c")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Put("c", 3))
}

func TestSimilarityCache(t *testing.T) {
	t.Run("order independent key", func(t *testing.T) {
		c := NewSimilarityCache(10)
		c.Put("кабель", "провод", 0.4)
		v, ok := c.Get("провод", "кабель")
		assert.True(t, ok)
		assert.Equal(t, 0.4, v)
	})

	t.Run("zero capacity stores nothing", func(t *testing.T) {
		c := NewSimilarityCache(0)
		assert.False(t, c.Put("a", "b", 1))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("concurrent access", func(t *testing.T) {
		c := NewSimilarityCache(500)
		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 1000; i++ {
					a, b := fmt.Sprint(i), fmt.Sprint(i+1)
					c.Put(a, b, float64(i))
					if v, ok := c.Get(b, a); ok {
						assert.Equal(t, float64(i), v)
					}
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 500, c.Len())
	})
}
