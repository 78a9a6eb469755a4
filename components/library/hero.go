package library

import "github.com/yanizio/sitebuilder/internal/registry"

func init() {
	registry.Register(&registry.Descriptor{
		Type:        registry.TypeHero,
		DisplayName: "Hero Section",
		Icon:        "🎯",
		Description: "Main banner section with title and CTA",
		Order:       20,
		DefaultContent: map[string]any{
			"title":    "Welcome to Our Site",
			"subtitle": "We create amazing experiences",
			"ctaText":  "Get Started",
			"ctaLink":  "#",
		},
		DefaultStyle: map[string]any{
			"backgroundColor": "#f3f4f6",
			"color":           "#000000",
			"padding":         "4rem 2rem",
			"textAlign":       "center",
		},
		ContentFields: []registry.FieldSpec{
			{Key: "title", Label: "Title", Kind: registry.KindText},
			{Key: "subtitle", Label: "Subtitle", Kind: registry.KindText},
			{Key: "ctaText", Label: "CTA Text", Kind: registry.KindText},
			{Key: "ctaLink", Label: "CTA Link", Kind: registry.KindText},
		},
		Preview: func(c map[string]any, _ registry.PreviewOptions) []registry.PreviewLine {
			return []registry.PreviewLine{
				line("Title", registry.Or(registry.String(c, "title"), "No title")),
				line("Subtitle", registry.Or(registry.String(c, "subtitle"), "No subtitle")),
				line("Button", registry.Or(registry.String(c, "ctaText"), "No button text")),
			}
		},
	})
}
