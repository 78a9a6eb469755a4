// internal/reorder/engine.go
//
// Drag-to-reorder state machine.
//
// Context
// -------
// A reorder is three phases: pick up a source component, hover over other
// components to choose a candidate index, then drop.  The engine is input
// agnostic; pointer, touch, and keyboard handlers all drive the same calls.
//
//	Idle ──PickUp──▶ Holding ──Hover/HoverAt/Nudge──▶ Holding
//	  ▲                 │
//	  └──Drop / Cancel──┘
//
// Nothing is mutated until Drop.  Drop and Cancel always return to Idle, so
// the engine can never be left holding a source.
//
// Candidate indices are arrayMove targets: the index the source ends up at
// after Document.Reorder(source, candidate).
//
// Notes
// -----
//   - The source is tracked by id, not index, so edits that land between
//     pick-up and drop (a delete from another panel) cannot move the wrong
//     component.
//   - HoverAt resolves the pointer's position inside the hovered component
//     into "before" or "after".  Exactly on the midpoint the previous
//     candidate is kept when it is one of the two choices, otherwise
//     "before" wins.
package reorder

// List is the part of the document the engine reads and mutates.
type List interface {
	Index(id string) int
	Len() int
	Reorder(from, to int) error
}

// Phase is the engine's coarse state.
type Phase string

const (
	Idle    Phase = "idle"
	Holding Phase = "holding"
)

// Snapshot is a read-only view for rendering drag feedback.
type Snapshot struct {
	Phase     Phase  `json:"phase"`
	SourceID  string `json:"sourceId,omitempty"`
	Candidate *int   `json:"candidateIndex,omitempty"`
}

// Engine holds transient drag state for one editor.  The zero value is Idle.
type Engine struct {
	sourceID  string
	candidate int
	hasCand   bool
}

// Holding reports whether a source is lifted.
func (e *Engine) Holding() bool { return e.sourceID != "" }

// State returns the current snapshot.
func (e *Engine) State() Snapshot {
	if !e.Holding() {
		return Snapshot{Phase: Idle}
	}
	s := Snapshot{Phase: Holding, SourceID: e.sourceID}
	if e.hasCand {
		c := e.candidate
		s.Candidate = &c
	}
	return s
}

// PickUp lifts id.  It does nothing while already holding, or when id is
// not in the list.
func (e *Engine) PickUp(l List, id string) bool {
	if e.Holding() || l.Index(id) < 0 {
		return false
	}
	e.sourceID = id
	e.hasCand = false
	return true
}

// Hover sets the candidate to the hovered component's index.
func (e *Engine) Hover(l List, hoveredID string) bool {
	if !e.Holding() {
		return false
	}
	i := l.Index(hoveredID)
	if i < 0 {
		return false
	}
	e.setCandidate(i)
	return true
}

// HoverAt sets the candidate from the pointer's vertical position inside
// the hovered component, where fraction 0 is its top edge and 1 its bottom.
func (e *Engine) HoverAt(l List, hoveredID string, fraction float64) bool {
	if !e.Holding() {
		return false
	}
	src, h := l.Index(e.sourceID), l.Index(hoveredID)
	if src < 0 || h < 0 {
		return false
	}
	before, after := target(src, h), target(src, h+1)

	switch {
	case fraction < 0.5:
		e.setCandidate(before)
	case fraction > 0.5:
		e.setCandidate(after)
	case e.hasCand && (e.candidate == before || e.candidate == after):
		// midpoint: keep what we had
	default:
		e.setCandidate(before)
	}
	return true
}

// target converts an insertion slot (0..n, a gap between elements) into
// the arrayMove index for a source at src.
func target(src, slot int) int {
	if slot > src {
		return slot - 1
	}
	return slot
}

// Nudge moves the candidate by delta positions, starting from the source
// when no candidate exists yet.  Keyboard handlers call Nudge(-1) and
// Nudge(+1).
func (e *Engine) Nudge(l List, delta int) bool {
	if !e.Holding() {
		return false
	}
	base := l.Index(e.sourceID)
	if base < 0 {
		return false
	}
	if e.hasCand {
		base = e.candidate
	}
	e.setCandidate(clamp(base+delta, 0, l.Len()-1))
	return true
}

// Drop commits the move when a candidate exists and differs from the
// source's current index.  The engine is Idle afterwards whatever the
// outcome.
func (e *Engine) Drop(l List) (bool, error) {
	defer e.Cancel()
	if !e.Holding() || !e.hasCand {
		return false, nil
	}
	src := l.Index(e.sourceID)
	if src < 0 || l.Len() == 0 {
		return false, nil
	}
	dst := clamp(e.candidate, 0, l.Len()-1)
	if dst == src {
		return false, nil
	}
	if err := l.Reorder(src, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel returns to Idle without mutating.
func (e *Engine) Cancel() {
	e.sourceID = ""
	e.candidate = 0
	e.hasCand = false
}

func (e *Engine) setCandidate(i int) {
	e.candidate = i
	e.hasCand = true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
