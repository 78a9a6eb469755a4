package library

import "github.com/yanizio/sitebuilder/internal/registry"

func init() {
	registry.Register(&registry.Descriptor{
		Type:        registry.TypeContact,
		DisplayName: "Contact Form",
		Icon:        "📧",
		Description: "Contact form with fields",
		Order:       60,
		DefaultContent: map[string]any{
			"title":  "Contact Us",
			"fields": []string{"Name", "Email", "Message"},
		},
		DefaultStyle: map[string]any{
			"backgroundColor": "#f9fafb",
			"padding":         "2rem",
			"borderRadius":    "8px",
		},
		ContentFields: []registry.FieldSpec{
			{Key: "title", Label: "Form Title", Kind: registry.KindText},
			{Key: "fields", Label: "Form Fields", Kind: registry.KindList,
				Placeholder: "Name, Email, Message"},
		},
		Preview: func(c map[string]any, _ registry.PreviewOptions) []registry.PreviewLine {
			return []registry.PreviewLine{
				line("Title", registry.Or(registry.String(c, "title"), "No title")),
				line("Fields", registry.Or(registry.JoinList(registry.StringList(c, "fields")), "No fields")),
			}
		},
	})
}
