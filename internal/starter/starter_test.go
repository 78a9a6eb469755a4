package starter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/yanizio/sitebuilder/components/library"
	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/registry"
)

func TestListBlankFirst(t *testing.T) {
	list, err := List()
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, Blank, list[0].ID)
	assert.Equal(t, []string{"blank", "blog", "business", "portfolio"},
		[]string{list[0].ID, list[1].ID, list[2].ID, list[3].ID})
}

func TestGetDefaultsToBlank(t *testing.T) {
	tpl, err := Get("")
	require.NoError(t, err)
	assert.Equal(t, Blank, tpl.ID)

	_, err = Get("ecommerce")
	assert.Error(t, err)
}

func TestBusinessPages(t *testing.T) {
	tpl, err := Get("business")
	require.NoError(t, err)
	pages, err := tpl.Seed(&document.Sequence{Prefix: "c"})
	require.NoError(t, err)
	require.Len(t, pages, 4)

	home := pages[0]
	assert.Equal(t, "/", home.Slug)
	require.Len(t, home.Body.Components, 4)
	assert.Equal(t, registry.TypeHeader, home.Body.Components[0].Type)
	assert.Equal(t, "Your Business", home.Body.Components[0].Content["logo"])
	assert.Equal(t, "#ffffff", home.Body.Components[0].Style["backgroundColor"])

	hero := home.Body.Components[1]
	assert.Equal(t, "Your Business Name", hero.Content["title"])
	assert.Equal(t, "Get Started", hero.Content["ctaText"], "defaults kept under overrides")

	assert.Equal(t, "/contact", pages[3].Slug)
	assert.Equal(t, registry.TypeContact, pages[3].Body.Components[0].Type)
}

func TestPagesMintUniqueIDs(t *testing.T) {
	tpl, _ := Get("business")
	pages, err := tpl.Seed(nil)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, p := range pages {
		for _, c := range p.Body.Components {
			assert.False(t, seen[c.ID])
			seen[c.ID] = true
		}
	}
}
