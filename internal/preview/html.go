// internal/preview/html.go
//
// Standalone preview page for hosts without a client-side renderer.
package preview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"
	"go.uber.org/zap"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/head"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	pageTmpl = template.Must(template.New("page.html").
			Funcs(template.FuncMap{"inlineCSS": InlineCSS}).
			ParseFS(templateFS, "templates/page.html"))

	minifier = newMinifier()
)

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", mhtml.Minify)
	return m
}

// PageData feeds the preview template.
type PageData struct {
	Head      template.HTML
	Title     string
	Published bool
	Summaries []Summary
}

// HTML renders the preview page for b.  Minification failures fall back to
// the unminified markup.
func HTML(title string, published bool, b document.Body, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	h := head.New()
	h.SetTitle(title + " (preview)")
	h.Meta("viewport", "width=device-width, initial-scale=1")
	if !published {
		h.Meta("robots", "noindex, nofollow")
	}
	h.Property("og:title", title)

	data := PageData{Head: h.Render(), Title: title, Published: published, Summaries: Render(b, opts)}
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("preview: render: %w", err)
	}
	out, err := minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		zap.S().Warnw("preview minify failed, serving original", "err", err)
		return buf.Bytes(), nil
	}
	return out, nil
}
