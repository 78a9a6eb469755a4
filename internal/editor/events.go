// internal/editor/events.go
package editor

import (
	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/reorder"
)

// Event kinds.
const (
	EventLoaded    = "loaded"
	EventChange    = "change"
	EventSelect    = "select"
	EventDrag      = "drag"
	EventMode      = "mode"
	EventSaved     = "saved"
	EventPublished = "published"
	EventClosed    = "closed" // last event; the session left the cache
)

// Event is one notification to subscribers.  Only the fields relevant to
// Kind are set.
type Event struct {
	Kind     string            `json:"kind"`
	Revision uint64            `json:"revision,omitempty"`
	Dirty    bool              `json:"dirty"`
	Document *document.Body    `json:"document,omitempty"`
	Selected *string           `json:"selectedComponentId,omitempty"`
	Drag     *reorder.Snapshot `json:"drag,omitempty"`
	Mode     Mode              `json:"mode,omitempty"`
}

// Subscribe registers fn for every future event and returns a function that
// removes it.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Session) Subscribers() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

// emit must be called without s.mu held.
func (s *Session) emit(evs ...Event) {
	if len(evs) == 0 {
		return
	}
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, ev := range evs {
		for _, fn := range fns {
			fn(ev)
		}
	}
}

// close tells subscribers the session is gone.  Later edits for the same
// key reach a new session, so feeds attached here must reconnect.
func (s *Session) close() {
	s.emit(Event{Kind: EventClosed})
}

func (s *Session) changeEventLocked(kind string) Event {
	body := s.doc.Body()
	return Event{Kind: kind, Revision: s.rev, Dirty: s.rev != s.savedRev, Document: &body}
}

func (s *Session) selectEventLocked() Event {
	ev := Event{Kind: EventSelect, Revision: s.rev}
	if id, ok := s.sel.Current(s.doc); ok {
		ev.Selected = &id
	}
	return ev
}

func (s *Session) dragEventLocked() Event {
	d := s.drag.State()
	return Event{Kind: EventDrag, Revision: s.rev, Drag: &d}
}
