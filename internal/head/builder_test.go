package head

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEscapesAndDedupes(t *testing.T) {
	b := New()
	b.SetTitle("Draft")
	b.SetTitle(`Joe's <Cafe>`)
	b.Meta("robots", "noindex")
	b.Meta("robots", "index")
	b.Property("og:title", `"quoted"`)
	b.Link("icon", "/favicon.ico")
	b.Link("icon", "/favicon.ico")

	got := string(b.Render())
	assert.Equal(t, `<meta charset="utf-8">`+
		`<title>Joe&#39;s &lt;Cafe&gt;</title>`+
		`<meta name="robots" content="noindex">`+
		`<meta property="og:title" content="&#34;quoted&#34;">`+
		`<link rel="icon" href="/favicon.ico">`, got)
}

func TestRenderWithoutTitle(t *testing.T) {
	assert.Equal(t, `<meta charset="utf-8">`, string(New().Render()))
}
