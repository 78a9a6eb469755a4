// internal/selection/selection.go
//
// Selected-component state for one editor.
//
// The stored id is a hint, not a fact: Current() checks it against the live
// document every time, so deleting the selected component (from the panel,
// the canvas, or a host replace) can never leave a dangling selection.
package selection

// Lookup is the slice of the document the selection needs.
type Lookup interface {
	Has(id string) bool
}

// State holds at most one selected id.  The zero value selects nothing.
type State struct {
	id string
}

// Select records id.  An empty id clears the selection.
func (s *State) Select(id string) { s.id = id }

// Clear drops the selection.
func (s *State) Clear() { s.id = "" }

// Current returns the selected id when it still exists in doc.
func (s *State) Current(doc Lookup) (string, bool) {
	if s.id == "" || doc == nil || !doc.Has(s.id) {
		return "", false
	}
	return s.id, true
}

// Is reports whether id is the live selection.
func (s *State) Is(doc Lookup, id string) bool {
	cur, ok := s.Current(doc)
	return ok && cur == id
}
