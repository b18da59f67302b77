package io

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"box-editor/editor"
	"box-editor/scene"
)

// materialNames assigns each distinct material used by boxes a unique,
// file-safe name. Nil surfaces map to the default material.
func materialNames(boxes []*editor.Box) map[*scene.Material]string {
	names := make(map[*scene.Material]string)
	taken := make(map[string]bool)
	add := func(m *scene.Material) {
		if _, ok := names[m]; ok {
			return
		}
		name := objName(m.Name)
		for i := 2; taken[name]; i++ {
			name = fmt.Sprintf("%s_%d", objName(m.Name), i)
		}
		taken[name] = true
		names[m] = name
	}
	for _, b := range boxes {
		for f := editor.Face(0); f < editor.FaceCount; f++ {
			m := b.Surface(f).Material
			if m == nil {
				m = scene.DefaultMaterial()
			}
			add(m)
		}
	}
	return names
}

// sortedMaterials orders the materials by assigned name for stable output.
func sortedMaterials(names map[*scene.Material]string) []*scene.Material {
	out := make([]*scene.Material, 0, len(names))
	for m := range names {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b *scene.Material) int { return strings.Compare(names[a], names[b]) })
	return out
}

// relativeURI expresses target relative to dir with forward slashes, as
// model files expect. Unrelated paths stay absolute.
func relativeURI(dir, target string) string {
	if rel, err := filepath.Rel(dir, target); err == nil {
		return filepath.ToSlash(rel)
	}
	if abs, err := filepath.Abs(target); err == nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(target)
}
