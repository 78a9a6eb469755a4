package library

import (
	"strconv"

	"github.com/yanizio/sitebuilder/internal/registry"
)

func init() {
	registry.Register(&registry.Descriptor{
		Type:        registry.TypeGallery,
		DisplayName: "Gallery",
		Icon:        "🖼️",
		Description: "Image gallery grid",
		Order:       50,
		DefaultContent: map[string]any{
			"images": []any{
				map[string]any{"src": "https://via.placeholder.com/300x200", "alt": "Gallery image 1"},
				map[string]any{"src": "https://via.placeholder.com/300x200", "alt": "Gallery image 2"},
				map[string]any{"src": "https://via.placeholder.com/300x200", "alt": "Gallery image 3"},
			},
		},
		DefaultStyle: map[string]any{
			"display":             "grid",
			"gridTemplateColumns": "repeat(auto-fit, minmax(250px, 1fr))",
			"gap":                 "1rem",
			"padding":             "1rem",
		},
		// Gallery images are structured values; the panel exposes styles only.
		ContentFields: nil,
		Preview: func(c map[string]any, _ registry.PreviewOptions) []registry.PreviewLine {
			n := registry.Len(c, "images")
			v := "No images"
			switch {
			case n == 1:
				v = "1 image"
			case n > 1:
				v = strconv.Itoa(n) + " images"
			}
			return []registry.PreviewLine{line("Images", v)}
		},
	})
}
