package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"box-editor/core"
)

func TestCatalogLookup(t *testing.T) {
	c, err := NewCatalog([]CatalogEntry{
		{Name: "Oak", Path: "oak.png", Price: 12.5},
		{Name: "brick", Color: [4]float32{0.7, 0.2, 0.1, 1}, Price: 4},
	})
	require.NoError(t, err)

	e, ok := c.Lookup("oak")
	require.True(t, ok)
	assert.Equal(t, "Oak", e.Name)
	assert.Equal(t, 12.5, e.Price)

	_, ok = c.Lookup("marble")
	assert.False(t, ok)

	assert.Equal(t, []string{"Oak", "brick"}, c.Names())
	assert.Equal(t, 2, c.Len())
}

func TestCatalogRejectsBadEntries(t *testing.T) {
	_, err := NewCatalog([]CatalogEntry{{Name: "a"}, {Name: "A"}})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	_, err = NewCatalog([]CatalogEntry{{Name: " "}})
	assert.Error(t, err)

	_, err = NewCatalog([]CatalogEntry{{Name: "cheap", Price: -1}})
	assert.Error(t, err)
}

func TestCatalogEntryAlbedo(t *testing.T) {
	assert.Equal(t, core.ColorWhite, CatalogEntry{}.albedo())
	assert.Equal(t, core.Color{R: 1, G: 0, B: 0, A: 1}, CatalogEntry{Color: [4]float32{1, 0, 0, 1}}.albedo())
}

func TestDefaultMaterial(t *testing.T) {
	assert.True(t, DefaultMaterial().IsDefault())
	assert.Zero(t, DefaultMaterial().Price)
	assert.False(t, NewMaterial("oak", core.ColorWhite, nil, 1).IsDefault())
}
