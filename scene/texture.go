package scene

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// Texture is the decoded image of a catalog entry. Exporters reference
// Source; Pixels are kept for previews.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte // RGBA8, row-major, top row first
	Source string // empty for solid colours
}

// LoadTexture decodes a PNG or JPEG file into RGBA8 pixels. The texture
// is named after the file without its extension.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	r := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, r.Min, draw.Src)

	base := filepath.Base(path)
	return &Texture{
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		Width:  r.Dx(),
		Height: r.Dy(),
		Pixels: rgba.Pix,
		Source: path,
	}, nil
}

// NewSolidTexture returns a single pixel texture of one colour.
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{Name: name, Width: 1, Height: 1, Pixels: []byte{r, g, b, a}}
}
