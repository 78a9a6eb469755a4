package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ids map[string]bool

func (m ids) Has(id string) bool { return m[id] }

func TestCurrentSelfHeals(t *testing.T) {
	doc := ids{"a": true, "b": true}
	var s State

	_, ok := s.Current(doc)
	assert.False(t, ok)

	s.Select("a")
	cur, ok := s.Current(doc)
	assert.True(t, ok)
	assert.Equal(t, "a", cur)
	assert.True(t, s.Is(doc, "a"))

	delete(doc, "a")
	_, ok = s.Current(doc)
	assert.False(t, ok)

	doc["a"] = true
	s.Select("")
	_, ok = s.Current(doc)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	doc := ids{"a": true}
	var s State
	s.Select("a")
	s.Clear()
	assert.False(t, s.Is(doc, "a"))
	_, ok := s.Current(nil)
	assert.False(t, ok)
}
