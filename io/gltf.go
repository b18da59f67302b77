package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"box-editor/editor"
	"box-editor/scene"
)

// ExportGLTF writes the boxes as a glTF scene: one node per box carrying its
// pose, and one mesh primitive per face so every face keeps its material.
// A .glb extension selects the binary container.
func ExportGLTF(path string, boxes []*editor.Box) error {
	doc := buildGLTF(boxes, filepath.Dir(path))
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		for _, buf := range doc.Buffers {
			buf.EmbeddedResource()
		}
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("gltf save %q: %w", path, err)
	}
	return nil
}

func buildGLTF(boxes []*editor.Box, dir string) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "box-editor"

	names := materialNames(boxes)
	matIndex := make(map[*scene.Material]int, len(names))
	for _, m := range sortedMaterials(names) {
		matIndex[m] = addMaterial(doc, m, names[m], dir)
	}

	for _, b := range boxes {
		mesh := &gltf.Mesh{Name: b.Name()}
		for _, q := range boxQuads(b) {
			positions := make([][3]float32, 4)
			normals := make([][3]float32, 4)
			uvs := make([][2]float32, 4)
			for i := range q.Corners {
				positions[i] = q.Corners[i]
				normals[i] = q.Normal
				uvs[i] = q.UVs[i]
			}
			mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
				Indices: gltf.Index(modeler.WriteIndices(doc, quadIndices[:])),
				Attributes: map[string]int{
					"POSITION":   modeler.WritePosition(doc, positions),
					"NORMAL":     modeler.WriteNormal(doc, normals),
					"TEXCOORD_0": modeler.WriteTextureCoord(doc, uvs),
				},
				Material: gltf.Index(matIndex[q.Material]),
			})
		}
		doc.Meshes = append(doc.Meshes, mesh)

		t := b.Transform()
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        b.Name(),
			Mesh:        gltf.Index(len(doc.Meshes) - 1),
			Translation: [3]float64{float64(t.Position.X), float64(t.Position.Y), float64(t.Position.Z)},
			Rotation:    [4]float64{float64(t.Rotation.X), float64(t.Rotation.Y), float64(t.Rotation.Z), float64(t.Rotation.W)},
			Scale:       [3]float64{float64(t.Scale.X), float64(t.Scale.Y), float64(t.Scale.Z)},
			Extras:      map[string]any{"price": b.Price()},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc
}

// addMaterial appends m as a non-metallic PBR material; file textures are
// referenced by URI relative to the output directory.
func addMaterial(doc *gltf.Document, m *scene.Material, name, dir string) int {
	metallic, roughness := 0.0, 1.0
	base := colorArray64(m.Albedo)
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &base,
		MetallicFactor:  &metallic,
		RoughnessFactor: &roughness,
	}
	if m.Texture != nil && m.Texture.Source != "" {
		doc.Images = append(doc.Images, &gltf.Image{
			Name: m.Texture.Name,
			URI:  relativeURI(dir, m.Texture.Source),
		})
		doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(len(doc.Images) - 1)})
		pbr.BaseColorTexture = &gltf.TextureInfo{Index: len(doc.Textures) - 1}
	}
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:                 name,
		PBRMetallicRoughness: pbr,
		Extras:               map[string]any{"price_per_unit": m.Price},
	})
	return len(doc.Materials) - 1
}
