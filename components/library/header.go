package library

import "github.com/yanizio/sitebuilder/internal/registry"

func init() {
	registry.Register(&registry.Descriptor{
		Type:        registry.TypeHeader,
		DisplayName: "Header",
		Icon:        "📋",
		Description: "Navigation header with logo and menu",
		Order:       10,
		DefaultContent: map[string]any{
			"logo":      "Your Logo",
			"menuItems": []string{"Home", "About", "Services", "Contact"},
		},
		DefaultStyle: map[string]any{
			"backgroundColor": "#ffffff",
			"color":           "#000000",
			"padding":         "1rem",
		},
		ContentFields: []registry.FieldSpec{
			{Key: "logo", Label: "Logo Text", Kind: registry.KindText},
			{Key: "menuItems", Label: "Menu Items", Kind: registry.KindList,
				Placeholder: "Home, About, Services, Contact"},
		},
		Preview: func(c map[string]any, _ registry.PreviewOptions) []registry.PreviewLine {
			return []registry.PreviewLine{
				line("Logo", registry.Or(registry.String(c, "logo"), "No logo")),
				line("Menu", registry.Or(registry.JoinList(registry.StringList(c, "menuItems")), "No menu items")),
			}
		},
	})
}
