// internal/registry/fields.go
//
// Field schema shared by the registry and the customization panel.
//
// Context
// -------
// A FieldSpec describes one editable attribute.  Content fields vary per
// component type and live on the Descriptor; style fields are one fixed set
// applied to every type (StyleFields below).
//
// Kinds
// -----
//   - text      single-line string.
//   - longtext  multi-line string.
//   - color     "#rrggbb" string.
//   - select    one value out of Options (empty means unset).
//   - list      sequence of strings edited as one ListDelimiter-joined line.
package registry

// FieldKind selects the editor widget and the value coercion rule.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindLongText FieldKind = "longtext"
	KindColor    FieldKind = "color"
	KindSelect   FieldKind = "select"
	KindList     FieldKind = "list"
)

// ListDelimiter joins list values for display and splits edits back.
const ListDelimiter = ", "

// FieldSpec describes one editable attribute.
type FieldSpec struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// StyleFields is the common style set rendered for every component type.
var StyleFields = []FieldSpec{
	{Key: "backgroundColor", Label: "Background Color", Kind: KindColor},
	{Key: "color", Label: "Text Color", Kind: KindColor},
	{Key: "padding", Label: "Padding", Kind: KindText, Placeholder: "padding"},
	{Key: "margin", Label: "Margin", Kind: KindText, Placeholder: "margin"},
	{Key: "fontSize", Label: "Font Size", Kind: KindText, Placeholder: "fontSize"},
	{Key: "fontWeight", Label: "Font Weight", Kind: KindSelect, Options: []string{
		"normal", "bold", "100", "200", "300", "400", "500", "600", "700", "800", "900",
	}},
	{Key: "textAlign", Label: "Text Align", Kind: KindSelect, Options: []string{
		"left", "center", "right", "justify",
	}},
	{Key: "borderRadius", Label: "Border Radius", Kind: KindText, Placeholder: "borderRadius"},
	{Key: "border", Label: "Border", Kind: KindText, Placeholder: "border"},
}

// StyleField returns the common style FieldSpec for key.
func StyleField(key string) (FieldSpec, bool) {
	for _, f := range StyleFields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}
