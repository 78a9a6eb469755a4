// internal/registry/registry.go
//
// Component type registry.
//
// Context
// -------
// Every component a page can hold (header, hero, text, and so on) is
// described by one Descriptor: its palette label and icon, the default
// content and style payloads copied into new instances, the ordered content
// field schema the customization panel renders, and a preview function that
// summarises an instance for read-only mode.
//
// Concrete descriptors live under components/library and call Register()
// from an init() function.  After process start the registry is read-only;
// callers never mutate a Descriptor they obtained from Lookup or List.
//
// Notes
// -----
//   - List() is ordered by Descriptor.Order, then by type name, so the
//     add-component palette is stable across restarts.
//   - Oxford commas, two spaces after periods.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ComponentType is the closed set of component kinds.
type ComponentType string

const (
	TypeHeader  ComponentType = "header"
	TypeHero    ComponentType = "hero"
	TypeText    ComponentType = "text"
	TypeImage   ComponentType = "image"
	TypeGallery ComponentType = "gallery"
	TypeContact ComponentType = "contact"
	TypeButton  ComponentType = "button"
	TypeFooter  ComponentType = "footer"
)

// Types lists the closed set in palette order.
var Types = []ComponentType{
	TypeHeader, TypeHero, TypeText, TypeImage,
	TypeGallery, TypeContact, TypeButton, TypeFooter,
}

// Valid reports whether t belongs to the closed set.
func (t ComponentType) Valid() bool {
	for _, k := range Types {
		if k == t {
			return true
		}
	}
	return false
}

// ErrUnknownType is the sentinel matched by *UnknownTypeError.
var ErrUnknownType = errors.New("unknown component type")

// UnknownTypeError is returned by Lookup for a type outside the registry.
type UnknownTypeError struct {
	Type ComponentType
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("registry: unknown component type %q", string(e.Type))
}

func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownType }

// PreviewLine is one "Label: value" row of a preview summary.
type PreviewLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PreviewOptions tunes preview output.  MaxText <= 0 disables truncation.
type PreviewOptions struct {
	MaxText int
}

// PreviewFunc extracts a human-readable summary from an instance's content.
// Implementations must tolerate missing keys and foreign value shapes.
type PreviewFunc func(content map[string]any, opts PreviewOptions) []PreviewLine

// Descriptor is the static, immutable definition of one component type.
type Descriptor struct {
	Type           ComponentType  `json:"type"`
	DisplayName    string         `json:"displayName"`
	Icon           string         `json:"icon"`
	Description    string         `json:"description"`
	Order          int            `json:"-"`
	DefaultContent map[string]any `json:"defaultContent"`
	DefaultStyle   map[string]any `json:"defaultStyle"`
	ContentFields  []FieldSpec    `json:"contentFields"`
	Preview        PreviewFunc    `json:"-"`
}

// Field returns the content FieldSpec for key.
func (d *Descriptor) Field(key string) (FieldSpec, bool) {
	for _, f := range d.ContentFields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

var (
	mu       sync.RWMutex
	registry = map[ComponentType]*Descriptor{}
)

// Register is invoked from init() functions.  It panics on a type outside
// the closed set or on a duplicate, since either is a programming error that
// must surface at boot.
func Register(d *Descriptor) {
	if d == nil || !d.Type.Valid() {
		panic(fmt.Sprintf("registry.Register: invalid descriptor %+v", d))
	}
	if d.Preview == nil {
		panic(fmt.Sprintf("registry.Register: %s has no preview func", d.Type))
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[d.Type]; dup {
		panic(fmt.Sprintf("registry.Register: duplicate type %s", d.Type))
	}
	registry[d.Type] = d
}

// Lookup returns the descriptor for t or *UnknownTypeError.
func Lookup(t ComponentType) (*Descriptor, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registry[t]
	if !ok {
		return nil, &UnknownTypeError{Type: t}
	}
	return d, nil
}

// List returns every registered descriptor in palette order.
func List() []*Descriptor {
	mu.RLock()
	out := make([]*Descriptor, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Type < out[j].Type
	})
	return out
}
