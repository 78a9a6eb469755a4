package library

import "github.com/yanizio/sitebuilder/internal/registry"

func init() {
	registry.Register(&registry.Descriptor{
		Type:        registry.TypeImage,
		DisplayName: "Image",
		Icon:        "🖼️",
		Description: "Image with caption",
		Order:       40,
		DefaultContent: map[string]any{
			"src":     "https://via.placeholder.com/400x300",
			"alt":     "Sample image",
			"caption": "Image caption",
		},
		DefaultStyle: map[string]any{
			"maxWidth":     "100%",
			"height":       "auto",
			"borderRadius": "8px",
		},
		ContentFields: []registry.FieldSpec{
			{Key: "src", Label: "Image URL", Kind: registry.KindText},
			{Key: "alt", Label: "Alt Text", Kind: registry.KindText},
			{Key: "caption", Label: "Caption", Kind: registry.KindText},
		},
		Preview: func(c map[string]any, _ registry.PreviewOptions) []registry.PreviewLine {
			src := registry.String(c, "src")
			if src == "" {
				src = registry.String(c, "url") // older builder rows
			}
			return []registry.PreviewLine{
				line("Alt Text", registry.Or(registry.String(c, "alt"), "No alt text")),
				line("URL", registry.Or(src, "No image URL")),
				line("Caption", registry.Or(registry.String(c, "caption"), "No caption")),
			}
		},
	})
}
