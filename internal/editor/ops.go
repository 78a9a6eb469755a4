// internal/editor/ops.go
//
// Editing operations.  Each one takes the session lock, applies a single
// document, selection, or drag step, bumps the revision when the document
// changed, and then notifies subscribers after unlocking.
//
// Stale ids are benign: the call reports false and nothing is emitted.
// Every mutation returns ErrReadOnly while the session is in preview mode.
package editor

import (
	"fmt"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/metrics"
	"github.com/yanizio/sitebuilder/internal/panel"
	"github.com/yanizio/sitebuilder/internal/registry"
)

// mutate runs fn under the lock.  When fn reports a document change the
// revision is bumped and a change event queued.
func (s *Session) mutate(op string, fn func() (changed bool, extra []Event, err error)) (bool, error) {
	s.touch()
	s.mu.Lock()
	if s.mode == ModePreview {
		s.mu.Unlock()
		return false, ErrReadOnly
	}
	changed, extra, err := fn()
	var evs []Event
	if changed {
		s.rev++
		evs = append(evs, s.changeEventLocked(EventChange))
	}
	evs = append(evs, extra...)
	s.mu.Unlock()

	if changed {
		metrics.MutationsTotal.WithLabelValues(op).Inc()
	}
	s.emit(evs...)
	return changed, err
}

// Add appends a component of type t with its defaults.
func (s *Session) Add(t registry.ComponentType) (document.Component, error) {
	var c document.Component
	_, err := s.mutate("add", func() (bool, []Event, error) {
		var err error
		c, err = s.doc.Create(t)
		return err == nil, nil, err
	})
	return c, err
}

// UpdateContent shallow-merges patch into a component's content.
func (s *Session) UpdateContent(id string, patch map[string]any) (bool, error) {
	return s.mutate("update_content", func() (bool, []Event, error) {
		return s.doc.UpdateContent(id, patch), nil, nil
	})
}

// UpdateStyle shallow-merges patch into a component's style.
func (s *Session) UpdateStyle(id string, patch map[string]any) (bool, error) {
	return s.mutate("update_style", func() (bool, []Event, error) {
		return s.doc.UpdateStyle(id, patch), nil, nil
	})
}

// Delete removes id.  Deleting the selected component also clears the
// selection.
func (s *Session) Delete(id string) (bool, error) {
	return s.mutate("delete", func() (bool, []Event, error) {
		wasSelected := s.sel.Is(s.doc, id)
		if !s.doc.Delete(id) {
			return false, nil, nil
		}
		if wasSelected {
			s.sel.Clear()
			return true, []Event{s.selectEventLocked()}, nil
		}
		return true, nil, nil
	})
}

// Reorder moves the component at from to to.
func (s *Session) Reorder(from, to int) (bool, error) {
	return s.mutate("reorder", func() (bool, []Event, error) {
		if err := s.doc.Reorder(from, to); err != nil {
			return false, nil, err
		}
		return from != to, nil, nil
	})
}

// ReplaceDocument swaps in a whole component list handed back by the host.
// Nothing changes when the list is invalid.
func (s *Session) ReplaceDocument(cs []document.Component) error {
	_, err := s.mutate("replace", func() (bool, []Event, error) {
		if err := s.doc.ReplaceAll(cs); err != nil {
			return false, nil, err
		}
		s.drag.Cancel()
		return true, []Event{s.selectEventLocked()}, nil
	})
	return err
}

/*───────────────────────────── selection ──────────────────────────────────*/

// Select makes id the selected component; "" clears the selection.  An id
// not in the document is refused.
func (s *Session) Select(id string) (bool, error) {
	ok := false
	_, err := s.mutate("select", func() (bool, []Event, error) {
		switch {
		case id == "":
			s.sel.Clear()
		case s.doc.Has(id):
			s.sel.Select(id)
		default:
			return false, nil, nil
		}
		ok = true
		return false, []Event{s.selectEventLocked()}, nil
	})
	return ok, err
}

// SetMode switches between edit and preview.  Entering preview clears the
// selection and cancels any drag.
func (s *Session) SetMode(m Mode) error {
	if m != ModeEdit && m != ModePreview {
		return fmt.Errorf("editor: unknown mode %q", m)
	}
	s.touch()
	s.mu.Lock()
	if s.mode == m {
		s.mu.Unlock()
		return nil
	}
	s.mode = m
	evs := []Event{{Kind: EventMode, Revision: s.rev, Mode: m}}
	if m == ModePreview {
		s.sel.Clear()
		s.drag.Cancel()
		evs = append(evs, s.selectEventLocked(), s.dragEventLocked())
	}
	s.mu.Unlock()

	s.emit(evs...)
	return nil
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

/*───────────────────────────── drag ───────────────────────────────────────*/

func (s *Session) dragStep(fn func() bool) (bool, error) {
	ok := false
	_, err := s.mutate("drag", func() (bool, []Event, error) {
		if ok = fn(); !ok {
			return false, nil, nil
		}
		return false, []Event{s.dragEventLocked()}, nil
	})
	return ok, err
}

// PickUp lifts id for dragging.
func (s *Session) PickUp(id string) (bool, error) {
	return s.dragStep(func() bool { return s.drag.PickUp(s.doc, id) })
}

// Hover sets the drop candidate to the hovered component's index.
func (s *Session) Hover(id string) (bool, error) {
	return s.dragStep(func() bool { return s.drag.Hover(s.doc, id) })
}

// HoverAt sets the drop candidate from the pointer position inside id.
func (s *Session) HoverAt(id string, fraction float64) (bool, error) {
	return s.dragStep(func() bool { return s.drag.HoverAt(s.doc, id, fraction) })
}

// Nudge moves the drop candidate by delta.
func (s *Session) Nudge(delta int) (bool, error) {
	return s.dragStep(func() bool { return s.drag.Nudge(s.doc, delta) })
}

// CancelDrag abandons the drag.
func (s *Session) CancelDrag() {
	s.touch()
	s.mu.Lock()
	held := s.drag.Holding()
	s.drag.Cancel()
	var evs []Event
	if held {
		evs = append(evs, s.dragEventLocked())
	}
	s.mu.Unlock()
	s.emit(evs...)
}

// Drop commits the drag.  It reports whether the document changed.
func (s *Session) Drop() (bool, error) {
	return s.mutate("reorder", func() (bool, []Event, error) {
		held := s.drag.Holding()
		moved, err := s.drag.Drop(s.doc)
		var evs []Event
		if held {
			evs = append(evs, s.dragEventLocked())
		}
		return moved, evs, err
	})
}

/*───────────────────────────── panel ──────────────────────────────────────*/

// Panel returns the customization panel view for the selection.
func (s *Session) Panel() panel.View {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel.View()
}

// PanelSetContent commits one content field edit on the selection.
func (s *Session) PanelSetContent(key, raw string) (bool, error) {
	return s.mutate("update_content", func() (bool, []Event, error) {
		ok, err := s.panel.SetContent(key, raw)
		return ok, nil, err
	})
}

// PanelSetStyle commits one style field edit on the selection.
func (s *Session) PanelSetStyle(key, raw string) (bool, error) {
	return s.mutate("update_style", func() (bool, []Event, error) {
		ok, err := s.panel.SetStyle(key, raw)
		return ok, nil, err
	})
}

// PanelDelete deletes the selection.
func (s *Session) PanelDelete() (bool, error) {
	return s.mutate("delete", func() (bool, []Event, error) {
		if !s.panel.Delete() {
			return false, nil, nil
		}
		return true, []Event{s.selectEventLocked()}, nil
	})
}
