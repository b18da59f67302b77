package io

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"box-editor/editor"
	"box-editor/scene"
)

// LayoutVersion is written to every layout file.
const LayoutVersion = "1.0"

var ErrLayoutVersion = errors.New("unsupported layout version")

// LayoutFile is the top-level structure of a saved layout. It holds the
// placed boxes only; undo history is never persisted.
type LayoutFile struct {
	Version string    `json:"version"`
	Name    string    `json:"name"`
	Boxes   []BoxData `json:"boxes"`
	Total   float64   `json:"total_price"` // informational, recomputed on load
}

// BoxData stores one placed box
type BoxData struct {
	Name       string     `json:"name"`
	Dimensions [3]float32 `json:"dimensions"` // width, height, depth
	Position   [3]float32 `json:"position"`
	Rotation   [4]float32 `json:"rotation"` // Quaternion (x,y,z,w)
	Scale      [3]float32 `json:"scale"`
	Faces      []FaceData `json:"faces,omitempty"` // +X, -X, +Y, -Y, +Z, -Z
}

// FaceData stores what one face shows. An empty material is the default.
type FaceData struct {
	Material string `json:"material,omitempty"` // catalog name
	Turns    int    `json:"turns,omitempty"`
}

// NewLayout captures boxes in scene order.
func NewLayout(name string, boxes []*editor.Box) *LayoutFile {
	l := &LayoutFile{Version: LayoutVersion, Name: name, Boxes: make([]BoxData, 0, len(boxes))}
	for _, b := range boxes {
		t := b.Transform()
		data := BoxData{
			Name:       b.Name(),
			Dimensions: dimsArray(b.Dimensions()),
			Position:   vec3Array(t.Position),
			Rotation:   quatArray(t.Rotation),
			Scale:      vec3Array(t.Scale),
		}
		textured := false
		faces := make([]FaceData, editor.FaceCount)
		for f := editor.Face(0); f < editor.FaceCount; f++ {
			surf := b.Surface(f)
			if !surf.Material.IsDefault() {
				faces[f] = FaceData{Material: surf.Material.Name, Turns: surf.Turns}
				textured = true
			}
		}
		if textured {
			data.Faces = faces
		}
		l.Boxes = append(l.Boxes, data)
		l.Total += b.Price()
	}
	return l
}

// SaveLayout serializes a layout to a JSON file
func SaveLayout(path string, layout *LayoutFile) error {
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}

// LoadLayout deserializes a layout JSON file
func LoadLayout(path string) (*LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	layout := &LayoutFile{}
	if err := json.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if layout.Version != LayoutVersion {
		return nil, fmt.Errorf("%q: %w", layout.Version, ErrLayoutVersion)
	}
	return layout, nil
}

// Specs resolves the layout into box specs for Editor.Import. Material names
// are looked up through textures, which may be nil for untextured layouts.
func (l *LayoutFile) Specs(ctx context.Context, textures *scene.TextureLoader) ([]editor.BoxSpec, error) {
	specs := make([]editor.BoxSpec, 0, len(l.Boxes))
	for i, data := range l.Boxes {
		spec := editor.BoxSpec{
			Name:       data.Name,
			Dimensions: arrayDims(data.Dimensions),
			Position:   arrayVec3(data.Position),
			Rotation:   arrayQuat(data.Rotation),
			Scale:      arrayVec3(data.Scale),
		}
		for f, face := range data.Faces {
			if f >= editor.FaceCount {
				break
			}
			spec.Surfaces[f].Turns = face.Turns
			if face.Material == "" {
				continue
			}
			if textures == nil {
				return nil, fmt.Errorf("box %d face %d: %q: %w", i, f, face.Material, scene.ErrUnknownTexture)
			}
			m, err := textures.Load(ctx, face.Material)
			if err != nil {
				return nil, fmt.Errorf("box %d face %d: %w", i, f, err)
			}
			spec.Surfaces[f].Material = m
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
