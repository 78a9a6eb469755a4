package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/yanizio/sitebuilder/components/library"
	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/registry"
)

func TestRenderEmpty(t *testing.T) {
	out := Render(document.Body{Components: []document.Component{}}, Options{})
	require.NotNil(t, out)
	assert.Empty(t, out)

	assert.Empty(t, Render(document.Body{}, Options{}))
}

func TestRenderInDocumentOrder(t *testing.T) {
	b := document.Body{Components: []document.Component{
		{ID: "h", Type: registry.TypeHeader, Content: map[string]any{"logo": "Acme", "menuItems": []any{"Home"}}},
		{ID: "x", Type: registry.TypeHero, Content: map[string]any{}},
		{ID: "t", Type: registry.TypeText, Content: map[string]any{"text": strings.Repeat("a", 80)}},
		{ID: "q", Type: "marquee"},
	}}
	out := Render(b, Options{})
	require.Len(t, out, 4)

	assert.Equal(t, "h", out[0].ComponentID)
	assert.Equal(t, "Header", out[0].Label)
	assert.Equal(t, "Acme", out[0].Lines[0].Value)
	assert.Equal(t, "Home", out[0].Lines[1].Value)

	assert.Equal(t, "No title", out[1].Lines[0].Value)

	assert.Equal(t, strings.Repeat("a", DefaultMaxText)+"...", out[2].Lines[0].Value)

	assert.Equal(t, "marquee", out[3].Label)
	assert.Equal(t, "Unsupported component", out[3].Lines[0].Value)
}

func TestRenderNoTruncation(t *testing.T) {
	long := strings.Repeat("b", 120)
	b := document.Body{Components: []document.Component{{ID: "t", Type: registry.TypeText, Content: map[string]any{"text": long}}}}
	out := Render(b, Options{MaxText: -1})
	assert.Equal(t, long, out[0].Lines[0].Value)
}

func TestRenderIsPure(t *testing.T) {
	d := document.New()
	c, _ := d.Create(registry.TypeButton)
	before := d.Body()
	Render(d.Body(), Options{})
	Render(d.Body(), Options{})
	after, _ := d.Get(c.ID)
	assert.Equal(t, before.Components[0], after)
}

func TestInlineCSS(t *testing.T) {
	css := InlineCSS(map[string]any{
		"backgroundColor": "#fff",
		"textAlign":       "center",
		"position":        "fixed",
		"color":           "red; background: url(http://evil)",
		"border":          "expression(alert(1))",
	})
	assert.Equal(t, "background-color: #fff; text-align: center;", string(css))
}

func TestHTMLPage(t *testing.T) {
	b := document.Body{Components: []document.Component{
		{ID: "h1", Type: registry.TypeHero, Content: map[string]any{"title": "<script>x</script>"},
			Style: map[string]any{"padding": "4rem"}},
	}}
	out, err := HTML("My Site", true, b, Options{})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "My Site")
	assert.Contains(t, s, "published")
	assert.Regexp(t, `padding:\s?4rem`, s)
	assert.NotContains(t, s, "<script>x")
	assert.Contains(t, s, "og:title")
	assert.NotContains(t, s, "noindex")

	out, err = HTML("Empty", false, document.Body{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "no components yet")
	assert.Contains(t, string(out), "noindex")
}
