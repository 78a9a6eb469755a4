// internal/document/document.go
//
// In-memory ordered component list for one page.
//
// Context
// -------
// Document owns the page's components in render order.  It is not safe for
// concurrent use; the editor session serialises access.  Every accessor
// returns deep copies so callers cannot reach the live maps.
//
// Stale operations (an id that no longer exists) are silent no-ops and
// report false.  Validation failures return typed errors and change nothing.
package document

import (
	"fmt"
	"maps"
	"reflect"

	"github.com/yanizio/sitebuilder/internal/registry"
)

// Option configures a Document.
type Option func(*Document)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(d *Document) { d.ids = g }
}

// Document is the ordered component list of one page.
type Document struct {
	components []Component
	ids        IDGenerator
}

// New returns an empty document.
func New(opts ...Option) *Document {
	d := &Document{components: []Component{}, ids: UUIDGenerator{}}
	for _, o := range opts {
		o(d)
	}
	return d
}

// FromBody builds a document from a stored body.
func FromBody(b Body, opts ...Option) (*Document, error) {
	d := New(opts...)
	if err := d.ReplaceAll(b.Components); err != nil {
		return nil, err
	}
	return d, nil
}

// Create appends a new component of type t with fresh copies of the
// registry defaults.
func (d *Document) Create(t registry.ComponentType) (Component, error) {
	desc, err := registry.Lookup(t)
	if err != nil {
		return Component{}, err
	}
	c := Component{
		ID:      d.ids.NewID(),
		Type:    t,
		Content: cloneMap(desc.DefaultContent),
		Style:   cloneMap(desc.DefaultStyle),
	}
	d.components = append(d.components, c)
	return c.Clone(), nil
}

// UpdateContent shallow-merges patch into the component's content.
func (d *Document) UpdateContent(id string, patch map[string]any) bool {
	i := d.Index(id)
	if i < 0 {
		return false
	}
	merge(d.components[i].Content, patch)
	return true
}

// UpdateStyle shallow-merges patch into the component's style.
func (d *Document) UpdateStyle(id string, patch map[string]any) bool {
	i := d.Index(id)
	if i < 0 {
		return false
	}
	merge(d.components[i].Style, patch)
	return true
}

func merge(dst, patch map[string]any) {
	for k, v := range patch {
		dst[k] = cloneValue(v)
	}
}

// Delete removes the component.  Deleting a missing id is a no-op.
func (d *Document) Delete(id string) bool {
	i := d.Index(id)
	if i < 0 {
		return false
	}
	d.components = append(d.components[:i], d.components[i+1:]...)
	return true
}

// Reorder moves the element at from so it ends up at index to, shifting the
// elements in between.
func (d *Document) Reorder(from, to int) error {
	n := len(d.components)
	if from < 0 || from >= n {
		return &IndexOutOfRangeError{Index: from, Len: n}
	}
	if to < 0 || to >= n {
		return &IndexOutOfRangeError{Index: to, Len: n}
	}
	if from == to {
		return nil
	}
	c := d.components[from]
	d.components = append(d.components[:from], d.components[from+1:]...)
	d.components = append(d.components[:to], append([]Component{c}, d.components[to:]...)...)
	return nil
}

// ReplaceAll swaps in a whole new list.  Ids are validated first; on error
// the document is untouched.  Types outside the registry are kept as-is so
// rows written by newer builds survive a load and save.
func (d *Document) ReplaceAll(cs []Component) error {
	seen := make(map[string]struct{}, len(cs))
	for i, c := range cs {
		if c.ID == "" {
			return fmt.Errorf("document: component %d: %w", i, ErrMissingID)
		}
		if _, dup := seen[c.ID]; dup {
			return &DuplicateIDError{ID: c.ID}
		}
		seen[c.ID] = struct{}{}
	}
	next := make([]Component, len(cs))
	for i, c := range cs {
		next[i] = c.Clone()
	}
	d.components = next
	return nil
}

// Index returns the position of id, or -1.
func (d *Document) Index(id string) int {
	for i := range d.components {
		if d.components[i].ID == id {
			return i
		}
	}
	return -1
}

// Has reports whether id is present.
func (d *Document) Has(id string) bool { return d.Index(id) >= 0 }

// Get returns a copy of the component with id.
func (d *Document) Get(id string) (Component, bool) {
	i := d.Index(id)
	if i < 0 {
		return Component{}, false
	}
	return d.components[i].Clone(), true
}

// Len returns the component count.
func (d *Document) Len() int { return len(d.components) }

// IDs returns the ids in render order.
func (d *Document) IDs() []string {
	out := make([]string, len(d.components))
	for i, c := range d.components {
		out[i] = c.ID
	}
	return out
}

// Components returns deep copies in render order.
func (d *Document) Components() []Component {
	out := make([]Component, len(d.components))
	for i, c := range d.components {
		out[i] = c.Clone()
	}
	return out
}

// Body snapshots the document for persistence.
func (d *Document) Body() Body { return Body{Components: d.Components()} }

// Clone returns an independent copy sharing the id generator.
func (d *Document) Clone() *Document {
	return &Document{components: d.Components(), ids: d.ids}
}

// Equal reports whether two documents hold the same ids, types, and maps in
// the same order.
func (d *Document) Equal(o *Document) bool {
	if len(d.components) != len(o.components) {
		return false
	}
	for i := range d.components {
		a, b := d.components[i], o.components[i]
		if a.ID != b.ID || a.Type != b.Type {
			return false
		}
		if !maps.EqualFunc(a.Content, b.Content, valueEqual) || !maps.EqualFunc(a.Style, b.Style, valueEqual) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool { return reflect.DeepEqual(a, b) }
