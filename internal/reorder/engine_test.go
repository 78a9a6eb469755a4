package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/yanizio/sitebuilder/components/library"
	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/registry"
)

func doc(t *testing.T, ids ...string) *document.Document {
	t.Helper()
	cs := make([]document.Component, len(ids))
	for i, id := range ids {
		cs[i] = document.Component{ID: id, Type: registry.TypeText}
	}
	d := document.New()
	require.NoError(t, d.ReplaceAll(cs))
	return d
}

func TestPickHoverDrop(t *testing.T) {
	d := doc(t, "A", "B", "C")
	var e Engine

	require.True(t, e.PickUp(d, "A"))
	assert.False(t, e.PickUp(d, "B"), "second pick-up is ignored")
	assert.Equal(t, "A", e.State().SourceID)

	require.True(t, e.Hover(d, "C"))
	assert.Equal(t, []string{"A", "B", "C"}, d.IDs(), "hover never mutates")
	require.NotNil(t, e.State().Candidate)
	assert.Equal(t, 2, *e.State().Candidate)

	moved, err := e.Drop(d)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"B", "C", "A"}, d.IDs())
	assert.Equal(t, Idle, e.State().Phase)
}

func TestDropWithoutCandidateOrSameIndex(t *testing.T) {
	d := doc(t, "A", "B")
	var e Engine

	e.PickUp(d, "A")
	moved, err := e.Drop(d)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.False(t, e.Holding())

	e.PickUp(d, "B")
	e.Hover(d, "B")
	moved, _ = e.Drop(d)
	assert.False(t, moved)
	assert.Equal(t, []string{"A", "B"}, d.IDs())
	assert.False(t, e.Holding())
}

func TestCancelFromEveryState(t *testing.T) {
	d := doc(t, "A", "B")
	var e Engine

	e.Cancel()
	assert.Equal(t, Idle, e.State().Phase)

	e.PickUp(d, "A")
	e.Cancel()
	assert.Equal(t, Idle, e.State().Phase)

	e.PickUp(d, "A")
	e.Hover(d, "B")
	e.Cancel()
	assert.Equal(t, Idle, e.State().Phase)
	assert.Equal(t, []string{"A", "B"}, d.IDs())
}

func TestHoverWhileIdleIsIgnored(t *testing.T) {
	d := doc(t, "A", "B")
	var e Engine
	assert.False(t, e.Hover(d, "B"))
	assert.False(t, e.HoverAt(d, "B", 0.2))
	assert.False(t, e.Nudge(d, 1))
	assert.False(t, e.PickUp(d, "ghost"))
}

func TestHoverAtHalves(t *testing.T) {
	d := doc(t, "A", "B", "C", "D")
	var e Engine
	e.PickUp(d, "A")

	e.HoverAt(d, "C", 0.25) // before C
	assert.Equal(t, 1, *e.State().Candidate)
	e.HoverAt(d, "C", 0.75) // after C
	assert.Equal(t, 2, *e.State().Candidate)

	moved, err := e.Drop(d)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"B", "C", "A", "D"}, d.IDs())
}

func TestHoverAtMidpointIsStable(t *testing.T) {
	d := doc(t, "A", "B", "C", "D")
	var e Engine
	e.PickUp(d, "D")

	e.HoverAt(d, "B", 0.5) // no prior candidate: before B
	assert.Equal(t, 1, *e.State().Candidate)

	e.HoverAt(d, "B", 0.9) // after B
	assert.Equal(t, 2, *e.State().Candidate)
	e.HoverAt(d, "B", 0.5) // midpoint keeps "after"
	assert.Equal(t, 2, *e.State().Candidate)

	e.HoverAt(d, "A", 0.5) // previous candidate not an option here
	assert.Equal(t, 0, *e.State().Candidate)
}

func TestNudge(t *testing.T) {
	d := doc(t, "A", "B", "C")
	var e Engine
	e.PickUp(d, "B")
	e.Nudge(d, -1)
	assert.Equal(t, 0, *e.State().Candidate)
	e.Nudge(d, -1)
	assert.Equal(t, 0, *e.State().Candidate, "clamped")
	e.Nudge(d, 5)
	assert.Equal(t, 2, *e.State().Candidate)

	moved, err := e.Drop(d)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"A", "C", "B"}, d.IDs())
}

func TestSourceDeletedBeforeDrop(t *testing.T) {
	d := doc(t, "A", "B", "C")
	var e Engine
	e.PickUp(d, "A")
	e.Hover(d, "C")
	d.Delete("A")

	moved, err := e.Drop(d)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{"B", "C"}, d.IDs())
	assert.False(t, e.Holding())
}

func TestCandidateClampedAfterShrink(t *testing.T) {
	d := doc(t, "A", "B", "C")
	var e Engine
	e.PickUp(d, "A")
	e.Hover(d, "C")
	d.Delete("B")

	moved, err := e.Drop(d)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"C", "A"}, d.IDs())
}
