package library

import "github.com/yanizio/sitebuilder/internal/registry"

func init() {
	registry.Register(&registry.Descriptor{
		Type:        registry.TypeFooter,
		DisplayName: "Footer",
		Icon:        "📄",
		Description: "Site footer with links",
		Order:       80,
		DefaultContent: map[string]any{
			"copyright": "© 2024 Your Company. All rights reserved.",
			"links":     []string{"Privacy Policy", "Terms of Service", "Contact"},
		},
		DefaultStyle: map[string]any{
			"backgroundColor": "#1f2937",
			"color":           "#ffffff",
			"padding":         "2rem",
			"textAlign":       "center",
		},
		ContentFields: []registry.FieldSpec{
			{Key: "copyright", Label: "Copyright Text", Kind: registry.KindText},
			{Key: "links", Label: "Footer Links", Kind: registry.KindList,
				Placeholder: "Privacy Policy, Terms of Service, Contact"},
		},
		Preview: func(c map[string]any, _ registry.PreviewOptions) []registry.PreviewLine {
			return []registry.PreviewLine{
				line("Copyright", registry.Or(registry.String(c, "copyright"), "No copyright text")),
				line("Links", registry.Or(registry.JoinList(registry.StringList(c, "links")), "No links")),
			}
		},
	})
}
