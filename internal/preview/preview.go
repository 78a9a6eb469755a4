// internal/preview/preview.go
//
// Read-only summaries for preview mode.
//
// Render is pure: it reads a page body and returns one Summary per
// component in document order.  Field extraction is delegated to each
// type's registry preview func, so missing fields turn into placeholders
// such as "No title" instead of errors.
package preview

import (
	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/registry"
)

// DefaultMaxText is the text block preview length in runes.
const DefaultMaxText = 50

// Options tunes Render.  MaxText 0 means DefaultMaxText; negative disables
// truncation.
type Options struct {
	MaxText int
}

// Summary is the preview of one component.
type Summary struct {
	ComponentID string                 `json:"componentId"`
	Type        registry.ComponentType `json:"type"`
	Label       string                 `json:"label"`
	Icon        string                 `json:"icon,omitempty"`
	Lines       []registry.PreviewLine `json:"lines"`
	Style       map[string]any         `json:"-"`
}

// Render summarises b.  An empty page yields an empty, non-nil slice.
func Render(b document.Body, opts Options) []Summary {
	po := registry.PreviewOptions{MaxText: opts.MaxText}
	if po.MaxText == 0 {
		po.MaxText = DefaultMaxText
	}

	out := make([]Summary, 0, len(b.Components))
	for _, c := range b.Components {
		s := Summary{ComponentID: c.ID, Type: c.Type, Label: string(c.Type), Style: c.Style}
		d, err := registry.Lookup(c.Type)
		if err != nil {
			s.Lines = []registry.PreviewLine{{Label: "Type", Value: "Unsupported component"}}
			out = append(out, s)
			continue
		}
		s.Label, s.Icon = d.DisplayName, d.Icon
		s.Lines = d.Preview(c.Content, po)
		if s.Lines == nil {
			s.Lines = []registry.PreviewLine{}
		}
		out = append(out, s)
	}
	return out
}
