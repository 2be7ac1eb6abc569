package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teresa-solution/site-builder-service/internal/model"
)

func TestLookup(t *testing.T) {
	c := Default()

	tpl, err := c.Lookup(model.TypeHero, "default")
	require.NoError(t, err)
	assert.Equal(t, "Default Hero Section", tpl.Name)
	assert.Equal(t, "Welcome to Our Site", tpl.DefaultData["title"])

	_, err = c.Lookup(model.TypeHero, "unknown-variant")
	assert.True(t, errors.Is(err, model.ErrTemplateNotFound))
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestLookup_ReturnsIndependentData(t *testing.T) {
	c := Default()

	first, err := c.Lookup(model.TypeNavbar, "default")
	require.NoError(t, err)
	first.DefaultData["title"] = "Changed"
	first.DefaultData["links"].([]any)[0].(map[string]any)["name"] = "Changed"

	second, err := c.Lookup(model.TypeNavbar, "default")
	require.NoError(t, err)
	assert.Equal(t, "Logo", second.DefaultData["title"])
	assert.Equal(t, "Home", second.DefaultData.Links()[0].Name)
}

func TestEveryVariantHasTemplate(t *testing.T) {
	c := Default()
	for _, v := range c.Variants() {
		_, err := c.Lookup(v.Type, v.Variant)
		assert.NoError(t, err, "%s/%s", v.Type, v.Variant)
	}
	assert.Len(t, c.VariantsOf(model.TypeHero), 3)
	assert.Len(t, c.VariantsOf(model.TypeFooter), 1)
}
