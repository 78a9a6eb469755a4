package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUEvictsOldest(t *testing.T) {
	c := New[string, int](2)
	c.Add("a", 1)
	c.Add("b", 2)
	_, _ = c.Get("a") // a is now MRU
	c.Add("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRUUpdate(t *testing.T) {
	c := New[string, int](2)
	c.Add("a", 1)
	c.Add("a", 5)
	v, _ := c.Get("a")
	assert.Equal(t, 5, v)
	assert.Equal(t, 1, c.Len())
}

func TestGetOrAdd(t *testing.T) {
	c := New[string, *int](4)
	calls := 0
	mk := func() *int { calls++; n := calls; return &n }

	first := c.GetOrAdd("k", mk)
	second := c.GetOrAdd("k", mk)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestNewPanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { New[string, int](0) })
}
