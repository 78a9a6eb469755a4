// internal/document/legacy.go
//
// Adapter for the flat site-level component list written by the first
// builder.  Those documents keep one list on the site itself
// (site.components) with "styles", "isSelected", and an unused "position".
// The nested page body is authoritative; this shape is read and written only
// by stores that still hold it.
package document

import "github.com/yanizio/sitebuilder/internal/registry"

// LegacyComponent mirrors one element of site.components.
type LegacyComponent struct {
	ID         string                 `json:"id" bson:"id"`
	Type       registry.ComponentType `json:"type" bson:"type"`
	Content    map[string]any         `json:"content" bson:"content"`
	Styles     map[string]any         `json:"styles" bson:"styles"`
	IsSelected bool                   `json:"isSelected,omitempty" bson:"isSelected,omitempty"`
	Position   *LegacyPosition        `json:"position,omitempty" bson:"position,omitempty"`
}

// LegacyPosition is decoded and then discarded.
type LegacyPosition struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// FromLegacy converts flat rows into components, dropping selection flags
// and positions.
func FromLegacy(in []LegacyComponent) []Component {
	out := make([]Component, 0, len(in))
	for _, l := range in {
		c := Component{ID: l.ID, Type: l.Type, Content: l.Content, Style: l.Styles}
		c.normalize()
		out = append(out, c)
	}
	return out
}

// ToLegacy converts components back into the flat shape.  Positions are
// never written.
func ToLegacy(in []Component) []LegacyComponent {
	out := make([]LegacyComponent, 0, len(in))
	for _, c := range in {
		c = c.Clone()
		out = append(out, LegacyComponent{ID: c.ID, Type: c.Type, Content: c.Content, Styles: c.Style})
	}
	return out
}
