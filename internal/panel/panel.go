// internal/panel/panel.go
//
// Customization panel: field schema plus two-way binding against the
// selected component.
//
// Context
// -------
// The panel renders one input per content FieldSpec of the selected
// component's type, then the fixed common style set.  Every edit is an
// immediate, unbatched patch against the document; there is no draft state.
// With nothing selected the panel is an empty placeholder and never mutates.
//
// Coercion
// --------
//   - text, longtext   stored as given.
//   - list             split on registry.ListDelimiter; "" becomes [].
//   - color            must be a hex color ("#rgb" or "#rrggbb").
//   - select           must be one of Options, or "" to unset.
//
// Notes
// -----
//   - Style keys outside the common set are preserved on the component but
//     cannot be edited here.
//   - Oxford commas, two spaces after periods.
package panel

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/registry"
	"github.com/yanizio/sitebuilder/internal/selection"
)

// DefaultColor is shown for color fields that have no value yet.
const DefaultColor = "#000000"

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid field value")
)

// FieldError reports a rejected edit.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("panel: field %q value %q: %v", e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var validate = validator.New()

// Field is one rendered input: its schema plus the current display value.
type Field struct {
	registry.FieldSpec
	Value string `json:"value"`
}

// View is what the panel shows for the current selection.
type View struct {
	Empty       bool                   `json:"empty"`
	ComponentID string                 `json:"componentId,omitempty"`
	Type        registry.ComponentType `json:"type,omitempty"`
	DisplayName string                 `json:"displayName,omitempty"`
	Icon        string                 `json:"icon,omitempty"`
	Content     []Field                `json:"content,omitempty"`
	Style       []Field                `json:"style,omitempty"`
}

// Panel binds the selection to the document.
type Panel struct {
	doc *document.Document
	sel *selection.State
}

// New wires a panel to doc and sel.
func New(doc *document.Document, sel *selection.State) *Panel {
	return &Panel{doc: doc, sel: sel}
}

// selected returns the live selected component.
func (p *Panel) selected() (document.Component, bool) {
	id, ok := p.sel.Current(p.doc)
	if !ok {
		return document.Component{}, false
	}
	return p.doc.Get(id)
}

// View builds the current panel state.
func (p *Panel) View() View {
	c, ok := p.selected()
	if !ok {
		return View{Empty: true}
	}
	v := View{ComponentID: c.ID, Type: c.Type}

	// Unknown types still get the style section.
	if d, err := registry.Lookup(c.Type); err == nil {
		v.DisplayName, v.Icon = d.DisplayName, d.Icon
		v.Content = make([]Field, 0, len(d.ContentFields))
		for _, f := range d.ContentFields {
			v.Content = append(v.Content, Field{FieldSpec: f, Value: display(f, c.Content)})
		}
	}
	v.Style = make([]Field, 0, len(registry.StyleFields))
	for _, f := range registry.StyleFields {
		v.Style = append(v.Style, Field{FieldSpec: f, Value: display(f, c.Style)})
	}
	return v
}

func display(f registry.FieldSpec, m map[string]any) string {
	switch f.Kind {
	case registry.KindList:
		return registry.JoinList(registry.StringList(m, f.Key))
	case registry.KindColor:
		return registry.Or(registry.String(m, f.Key), DefaultColor)
	default:
		return registry.String(m, f.Key)
	}
}

// SetContent commits one content field edit.  It reports false when nothing
// is selected.
func (p *Panel) SetContent(key, raw string) (bool, error) {
	c, ok := p.selected()
	if !ok {
		return false, nil
	}
	d, err := registry.Lookup(c.Type)
	if err != nil {
		return false, err
	}
	f, ok := d.Field(key)
	if !ok {
		return false, &FieldError{Key: key, Value: raw, Err: ErrUnknownField}
	}
	val, err := coerce(f, raw)
	if err != nil {
		return false, err
	}
	return p.doc.UpdateContent(c.ID, map[string]any{key: val}), nil
}

// SetStyle commits one common style field edit.
func (p *Panel) SetStyle(key, raw string) (bool, error) {
	c, ok := p.selected()
	if !ok {
		return false, nil
	}
	f, ok := registry.StyleField(key)
	if !ok {
		return false, &FieldError{Key: key, Value: raw, Err: ErrUnknownField}
	}
	val, err := coerce(f, raw)
	if err != nil {
		return false, err
	}
	return p.doc.UpdateStyle(c.ID, map[string]any{key: val}), nil
}

// Delete removes the selected component and clears the selection.
func (p *Panel) Delete() bool {
	c, ok := p.selected()
	if !ok {
		return false
	}
	p.sel.Clear()
	return p.doc.Delete(c.ID)
}

func coerce(f registry.FieldSpec, raw string) (any, error) {
	switch f.Kind {
	case registry.KindList:
		return registry.SplitList(raw), nil
	case registry.KindColor:
		if err := validate.Var(raw, "required,hexcolor"); err != nil {
			return nil, &FieldError{Key: f.Key, Value: raw, Err: ErrInvalidValue}
		}
		return raw, nil
	case registry.KindSelect:
		if raw != "" && !slices.Contains(f.Options, raw) {
			return nil, &FieldError{Key: f.Key, Value: raw, Err: ErrInvalidValue}
		}
		return raw, nil
	default:
		return raw, nil
	}
}
