package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/registry"
)

func TestMongoSiteToPage(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":         "site-1",
		"userId":      "u1",
		"name":        "Legacy",
		"isPublished": false,
		"components": bson.A{
			bson.M{
				"id":         "component-1",
				"type":       "gallery",
				"content":    bson.M{"images": bson.A{bson.M{"src": "a.png"}, bson.M{"src": "b.png"}}},
				"styles":     bson.M{"gap": "1rem"},
				"isSelected": true,
				"position":   bson.M{"x": 10, "y": 20},
			},
		},
	})
	require.NoError(t, err)

	var doc mongoSite
	require.NoError(t, bson.Unmarshal(raw, &doc))
	p := doc.page()

	assert.Equal(t, "site-1", p.ID)
	assert.Equal(t, "/", p.Slug)
	require.Len(t, p.Body.Components, 1)
	c := p.Body.Components[0]
	assert.Equal(t, registry.TypeGallery, c.Type)
	assert.Equal(t, "1rem", c.Style["gap"])

	images, ok := c.Content["images"].([]any)
	require.True(t, ok)
	require.Len(t, images, 2)
	first, ok := images[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a.png", first["src"])
}

func TestNormalizeValue(t *testing.T) {
	v := normalizeValue(bson.D{{Key: "a", Value: bson.A{bson.D{{Key: "b", Value: 1}}}}})
	assert.Equal(t, map[string]any{"a": []any{map[string]any{"b": 1}}}, v)
}

func TestToLegacyDropsPosition(t *testing.T) {
	out := document.ToLegacy([]document.Component{{ID: "x", Type: registry.TypeText}})
	raw, err := bson.Marshal(bson.M{"components": out})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "position")
	assert.NotContains(t, string(raw), "isSelected")
}
