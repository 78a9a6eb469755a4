// internal/preview/css.go
//
// Inline style sanitising for the HTML preview.
//
// Style maps are free-form at the model layer.  Only whitelisted properties
// reach the page, camelCase keys become kebab-case, and any value that could
// break out of a declaration or fetch a resource is dropped.
package preview

import (
	"html/template"
	"sort"
	"strings"

	"github.com/yanizio/sitebuilder/internal/registry"
)

var cssAllowed = map[string]bool{
	"backgroundColor":     true,
	"color":               true,
	"padding":             true,
	"margin":              true,
	"fontSize":            true,
	"fontWeight":          true,
	"textAlign":           true,
	"borderRadius":        true,
	"border":              true,
	"lineHeight":          true,
	"maxWidth":            true,
	"height":              true,
	"display":             true,
	"gridTemplateColumns": true,
	"gap":                 true,
	"cursor":              true,
}

var cssDenied = []string{"url(", "expression", "javascript:", "@import", "\\", "/*"}

// InlineCSS renders style as a safe inline declaration list.
func InlineCSS(style map[string]any) template.CSS {
	keys := make([]string, 0, len(style))
	for k := range style {
		if cssAllowed[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		val := strings.TrimSpace(registry.String(style, k))
		if !safeValue(val) {
			continue
		}
		b.WriteString(kebab(k))
		b.WriteString(": ")
		b.WriteString(val)
		b.WriteString("; ")
	}
	return template.CSS(strings.TrimSpace(b.String()))
}

func safeValue(v string) bool {
	if v == "" || strings.ContainsAny(v, ";{}<>\"'") {
		return false
	}
	low := strings.ToLower(v)
	for _, d := range cssDenied {
		if strings.Contains(low, d) {
			return false
		}
	}
	return true
}

func kebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
