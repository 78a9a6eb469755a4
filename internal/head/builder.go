// internal/head/builder.go
//
// The Builder collects the tags that belong inside a rendered page's
// <head> element.  It is scoped to a single render call: the renderer
// pushes a title and meta tags, and the template emits Render() once.
//
// Features
// --------
//   - SetTitle        – single <title> tag (last call wins).
//   - Meta, Property  – <meta name> and <meta property> (Open Graph) tags,
//     deduplicated on name or property.
//   - Link            – <link rel href>, deduplicated on rel and href.
//
// Tags are assembled from attribute values, never from caller-supplied
// markup, so every value is escaped exactly once.
package head

import (
	"html/template"
	"strings"
)

// Builder is not safe for concurrent use.
type Builder struct {
	title string
	tags  []string
	seen  map[string]struct{}
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// SetTitle overrides the page <title>.
func (b *Builder) SetTitle(t string) { b.title = t }

// Meta adds <meta name content>.  A second call for the same name is
// ignored.
func (b *Builder) Meta(name, content string) {
	b.add("name:"+name, `<meta name="`+esc(name)+`" content="`+esc(content)+`">`)
}

// Property adds <meta property content>, e.g. og:title.
func (b *Builder) Property(prop, content string) {
	b.add("property:"+prop, `<meta property="`+esc(prop)+`" content="`+esc(content)+`">`)
}

// Link adds <link rel href>.
func (b *Builder) Link(rel, href string) {
	b.add("link:"+rel+" "+href, `<link rel="`+esc(rel)+`" href="`+esc(href)+`">`)
}

func (b *Builder) add(key, tag string) {
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	b.tags = append(b.tags, tag)
}

// Render returns the charset tag, the title, and every added tag in
// insertion order.
func (b *Builder) Render() template.HTML {
	var sb strings.Builder
	sb.WriteString(`<meta charset="utf-8">`)
	if b.title != "" {
		sb.WriteString("<title>" + esc(b.title) + "</title>")
	}
	for _, t := range b.tags {
		sb.WriteString(t)
	}
	return template.HTML(sb.String())
}

func esc(s string) string { return template.HTMLEscapeString(s) }
