// internal/document/component.go
//
// Component instances and the page body wire shape.
//
// Context
// -------
// A page body is stored as JSON:
//
//	{ "components": [ { "id", "type", "content", "style" } ] }
//
// Older rows written by the first builder used "styles" instead of "style",
// sometimes "data" instead of "content", and carried "isSelected" and
// "position" keys.  UnmarshalJSON reads every one of those shapes; MarshalJSON
// only ever writes the current shape.  Position and selection flags are
// dropped on decode.
package document

import (
	"encoding/json"

	"github.com/yanizio/sitebuilder/internal/registry"
)

// Component is one typed block on a page.
type Component struct {
	ID      string                 `json:"id"`
	Type    registry.ComponentType `json:"type"`
	Content map[string]any         `json:"content"`
	Style   map[string]any         `json:"style"`
}

// UnmarshalJSON accepts current and legacy component rows.
func (c *Component) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID      string                 `json:"id"`
		Type    registry.ComponentType `json:"type"`
		Content map[string]any         `json:"content"`
		Data    map[string]any         `json:"data"`
		Style   map[string]any         `json:"style"`
		Styles  map[string]any         `json:"styles"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.ID, c.Type = raw.ID, raw.Type
	c.Content = raw.Content
	if c.Content == nil {
		c.Content = raw.Data
	}
	c.Style = raw.Style
	if c.Style == nil {
		c.Style = raw.Styles
	}
	c.normalize()
	return nil
}

func (c *Component) normalize() {
	if c.Content == nil {
		c.Content = map[string]any{}
	}
	if c.Style == nil {
		c.Style = map[string]any{}
	}
}

// Clone returns a deep copy.
func (c Component) Clone() Component {
	return Component{
		ID:      c.ID,
		Type:    c.Type,
		Content: cloneMap(c.Content),
		Style:   cloneMap(c.Style),
	}
}

// Body is the persisted page body.
type Body struct {
	Components []Component `json:"components"`
}

// MarshalJSON always writes an array, never null.
func (b Body) MarshalJSON() ([]byte, error) {
	comps := b.Components
	if comps == nil {
		comps = []Component{}
	}
	return json.Marshal(struct {
		Components []Component `json:"components"`
	}{comps})
}

// ParseBody decodes a stored page body.  Empty input is an empty page.
func ParseBody(data []byte) (Body, error) {
	var b Body
	if len(data) == 0 {
		return Body{Components: []Component{}}, nil
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return Body{}, err
	}
	if b.Components == nil {
		b.Components = []Component{}
	}
	return b, nil
}

/*───────────────────────────────────────────────────────────────────────────
  Deep copy
───────────────────────────────────────────────────────────────────────────*/

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, e := range t {
			out[i] = cloneMap(e)
		}
		return out
	default:
		return v
	}
}
