package library

import "github.com/yanizio/sitebuilder/internal/registry"

func init() {
	registry.Register(&registry.Descriptor{
		Type:        registry.TypeButton,
		DisplayName: "Button",
		Icon:        "🔘",
		Description: "Call-to-action button",
		Order:       70,
		DefaultContent: map[string]any{
			"text": "Click Me",
			"link": "#",
		},
		DefaultStyle: map[string]any{
			"backgroundColor": "#3b82f6",
			"color":           "#ffffff",
			"padding":         "0.75rem 1.5rem",
			"borderRadius":    "6px",
			"border":          "none",
			"cursor":          "pointer",
		},
		ContentFields: []registry.FieldSpec{
			{Key: "text", Label: "Button Text", Kind: registry.KindText},
			{Key: "link", Label: "Link", Kind: registry.KindText},
		},
		Preview: func(c map[string]any, _ registry.PreviewOptions) []registry.PreviewLine {
			return []registry.PreviewLine{
				line("Text", registry.Or(registry.String(c, "text"), "No button text")),
				line("Link", registry.Or(registry.String(c, "link"), "No link")),
			}
		},
	})
}
