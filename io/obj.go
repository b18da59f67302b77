package io

import (
	"bufio"
	"fmt"
	stdio "io"
	"os"
	"path/filepath"
	"strings"

	"box-editor/editor"
	"box-editor/scene"
)

// ExportOBJ writes the boxes to a Wavefront .obj file in world space, with
// their materials in a .mtl file next to it.
func ExportOBJ(path string, boxes []*editor.Box) error {
	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	names := materialNames(boxes)

	err := writeText(path, "OBJ", func(w *bufio.Writer) {
		writeOBJ(w, boxes, names, filepath.Base(mtlPath))
	})
	if err != nil {
		return err
	}
	return writeText(mtlPath, "MTL", func(w *bufio.Writer) {
		writeMTL(w, names, filepath.Dir(path))
	})
}

// createFile opens export targets; tests replace it.
var createFile = func(path string) (stdio.WriteCloser, error) { return os.Create(path) }

// writeText creates path and fills it through a buffered writer. Flush and
// close errors are both reported.
func writeText(path, kind string, fill func(w *bufio.Writer)) (err error) {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", kind, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s file: %w", kind, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	fill(w)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s file: %w", kind, err)
	}
	return nil
}

func writeOBJ(w *bufio.Writer, boxes []*editor.Box, names map[*scene.Material]string, mtlName string) {
	fmt.Fprintln(w, "# Exported by box-editor")
	fmt.Fprintf(w, "mtllib %s\n\n", mtlName)

	vertexOffset := 0
	for _, b := range boxes {
		fmt.Fprintf(w, "o %s\n", objName(b.Name()))
		t := b.Transform()
		quads := boxQuads(b)

		// Write vertices, normals and UVs, four per face
		for _, q := range quads {
			for _, c := range q.Corners {
				p := t.Apply(arrayVec3(c))
				fmt.Fprintf(w, "v %f %f %f\n", p.X, p.Y, p.Z)
			}
		}
		for _, q := range quads {
			n := t.Rotation.RotateVector(arrayVec3(q.Normal))
			for range q.Corners {
				fmt.Fprintf(w, "vn %f %f %f\n", n.X, n.Y, n.Z)
			}
		}
		for _, q := range quads {
			for _, uv := range q.UVs {
				fmt.Fprintf(w, "vt %f %f\n", uv[0], 1-uv[1]) // OBJ v points up
			}
		}

		// Write faces (1-indexed in OBJ)
		for i, q := range quads {
			fmt.Fprintf(w, "usemtl %s\n", names[q.Material])
			base := vertexOffset + i*4 + 1
			for k := 0; k < len(quadIndices); k += 3 {
				i0 := base + int(quadIndices[k])
				i1 := base + int(quadIndices[k+1])
				i2 := base + int(quadIndices[k+2])
				fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", i0, i0, i0, i1, i1, i1, i2, i2, i2)
			}
		}
		vertexOffset += len(quads) * 4
		fmt.Fprintln(w)
	}
}

// writeMTL writes one newmtl block per distinct material.
func writeMTL(w *bufio.Writer, names map[*scene.Material]string, dir string) {
	fmt.Fprintln(w, "# Exported by box-editor")
	for _, m := range sortedMaterials(names) {
		fmt.Fprintf(w, "\nnewmtl %s\n", names[m])
		fmt.Fprintf(w, "Kd %f %f %f\n", m.Albedo.R, m.Albedo.G, m.Albedo.B)
		fmt.Fprintf(w, "d %f\n", m.Albedo.A)
		if m.Texture != nil && m.Texture.Source != "" {
			fmt.Fprintf(w, "map_Kd %s\n", relativeURI(dir, m.Texture.Source))
		}
	}
}

// objName replaces whitespace, which OBJ statements cannot carry.
func objName(s string) string {
	s = strings.Join(strings.Fields(s), "_")
	if s == "" {
		return "unnamed"
	}
	return s
}
