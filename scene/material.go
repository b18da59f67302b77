package scene

import "box-editor/core"

// Material describes the surface applied to one face of a box.
// Materials are shared between faces and never mutated after creation.
type Material struct {
	Name   string
	Albedo core.Color // base colour, multiplied with Texture when set

	// Optional texture image. Nil for plain colour surfaces.
	Texture *Texture

	// Price per square unit of face area.
	Price float64
}

var defaultMaterial = &Material{
	Name:   "Default",
	Albedo: core.ColorWhite,
}

// DefaultMaterial returns the shared untextured white material. It costs nothing.
func DefaultMaterial() *Material {
	return defaultMaterial
}

// NewMaterial creates a priced material with the given albedo and optional texture.
func NewMaterial(name string, albedo core.Color, tex *Texture, price float64) *Material {
	return &Material{
		Name:    name,
		Albedo:  albedo,
		Texture: tex,
		Price:   price,
	}
}

// IsDefault reports whether m is the untextured default surface.
func (m *Material) IsDefault() bool {
	return m == nil || m == defaultMaterial
}
