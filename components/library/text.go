package library

import "github.com/yanizio/sitebuilder/internal/registry"

func init() {
	registry.Register(&registry.Descriptor{
		Type:        registry.TypeText,
		DisplayName: "Text Block",
		Icon:        "📝",
		Description: "Rich text content block",
		Order:       30,
		DefaultContent: map[string]any{
			"text": "Add your content here...",
		},
		DefaultStyle: map[string]any{
			"color":      "#000000",
			"fontSize":   "1rem",
			"lineHeight": "1.6",
			"padding":    "1rem",
		},
		ContentFields: []registry.FieldSpec{
			{Key: "text", Label: "Text Content", Kind: registry.KindLongText},
		},
		Preview: func(c map[string]any, opts registry.PreviewOptions) []registry.PreviewLine {
			body := registry.Truncate(registry.String(c, "text"), opts.MaxText)
			return []registry.PreviewLine{
				line("Content", registry.Or(body, "No content")),
			}
		},
	})
}
