package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"box-editor/core"
)

var (
	ErrUnknownTexture = errors.New("unknown texture")
	ErrDuplicateEntry = errors.New("duplicate catalog entry")
)

// CatalogEntry is one texture offered to users, as listed in the [[textures]] config tables.
type CatalogEntry struct {
	Name  string     `toml:"name"`
	Path  string     `toml:"path"`  // image file; empty for a solid colour
	Color [4]float32 `toml:"color"` // RGBA 0-1; zero value means white
	Price float64    `toml:"price"` // per square unit of face area
}

func (e CatalogEntry) albedo() core.Color {
	if e.Color == [4]float32{} {
		return core.ColorWhite
	}
	return core.Color{R: e.Color[0], G: e.Color[1], B: e.Color[2], A: e.Color[3]}
}

// Catalog is the set of textures a user can pick from, keyed by lower-case name.
type Catalog struct {
	entries map[string]CatalogEntry
}

// NewCatalog validates entries and indexes them by name.
func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]CatalogEntry, len(entries))}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Name))
		if key == "" {
			return nil, fmt.Errorf("catalog entry with empty name: %w", ErrUnknownTexture)
		}
		if _, dup := c.entries[key]; dup {
			return nil, fmt.Errorf("%q: %w", e.Name, ErrDuplicateEntry)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("%q: negative price %v", e.Name, e.Price)
		}
		c.entries[key] = e
	}
	return c, nil
}

// Lookup returns the entry registered under name.
func (c *Catalog) Lookup(name string) (CatalogEntry, bool) {
	e, ok := c.entries[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Names lists the catalog in alphabetical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Len() int { return len(c.entries) }
