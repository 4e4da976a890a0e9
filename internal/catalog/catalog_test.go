package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesLoaded(t *testing.T) {
	all := Templates()
	require.NotEmpty(t, all)

	ids := make(map[string]bool)
	for _, tpl := range all {
		assert.NotEmpty(t, tpl.ID)
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Category)
		assert.False(t, ids[tpl.ID], "duplicate template id %s", tpl.ID)
		ids[tpl.ID] = true
	}

	assert.True(t, ids["saas-landing"])
	assert.True(t, ids["portfolio"])
	assert.Contains(t, TemplateCategories(), "custom")
}

func TestTemplateByID(t *testing.T) {
	tpl, ok := TemplateByID("blog")
	require.True(t, ok)
	assert.Equal(t, "Minimalist Blog", tpl.Name)

	_, ok = TemplateByID("does-not-exist")
	assert.False(t, ok)
}

func TestTemplateContentByID(t *testing.T) {
	content, ok := TemplateContentByID("portfolio")
	require.True(t, ok)
	assert.Equal(t, "portfolio", content.ID)
	assert.NotEmpty(t, content.HTMLContent)
	assert.Equal(t, true, content.CanvasSettings["responsive"])

	_, ok = TemplateContentByID("nope")
	assert.False(t, ok)
}

func TestComponentsLoaded(t *testing.T) {
	byCategory := Components()
	require.NotEmpty(t, byCategory)

	for _, category := range ComponentCategories() {
		list, ok := ComponentsByCategory(category)
		require.True(t, ok)
		require.NotEmpty(t, list, "category %s has no components", category)
		for _, c := range list {
			assert.Equal(t, category, c.Category)
			assert.NotEmpty(t, c.ID)
			assert.NotNil(t, c.Properties, "component %s properties must unmarshal", c.ID)
		}
	}
}

func TestComponentByID(t *testing.T) {
	c, ok := ComponentByID("ui", "btn-primary")
	require.True(t, ok)
	assert.Equal(t, "Primary Button", c.Name)
	assert.Equal(t, "#2563eb", c.Properties["background"])

	_, ok = ComponentByID("ui", "missing")
	assert.False(t, ok)

	_, ok = ComponentByID("missing", "btn-primary")
	assert.False(t, ok)
}
