package io

import (
	"box-editor/editor"
	"box-editor/math"
	"box-editor/scene"
)

// faceQuad is one side of a box as a textured quad in box-local space.
// Corners wind counter-clockwise seen from outside.
type faceQuad struct {
	Face     editor.Face
	Corners  [4][3]float32
	Normal   [3]float32
	UVs      [4][2]float32
	Material *scene.Material
}

// tangent axes per face, chosen so that u × v is the outward normal
var faceAxes = [editor.FaceCount][2]math.Vec3{
	editor.FaceRight:  {{Z: -1}, {Y: 1}},
	editor.FaceLeft:   {{Z: 1}, {Y: 1}},
	editor.FaceTop:    {{X: 1}, {Z: -1}},
	editor.FaceBottom: {{X: 1}, {Z: 1}},
	editor.FaceFront:  {{X: 1}, {Y: 1}},
	editor.FaceBack:   {{X: -1}, {Y: 1}},
}

// glTF texture space has v pointing down
var quadUVs = [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// boxQuads returns the six faces of b in face order, unscaled and centred
// on the origin. Texture quarter turns rotate the UV assignment.
func boxQuads(b *editor.Box) [editor.FaceCount]faceQuad {
	half := b.Dimensions().Size().Mul(0.5)
	var quads [editor.FaceCount]faceQuad
	for f := editor.Face(0); f < editor.FaceCount; f++ {
		n := f.Normal()
		u, v := faceAxes[f][0], faceAxes[f][1]
		hu, hv := absDot(u, half), absDot(v, half)
		c := n.MulVec(half)
		du, dv := u.Mul(hu), v.Mul(hv)

		surf := b.Surface(f)
		if surf.Material == nil {
			surf.Material = scene.DefaultMaterial()
		}
		q := faceQuad{Face: f, Normal: vec3Array(n), Material: surf.Material}
		corners := [4]math.Vec3{
			c.Sub(du).Sub(dv),
			c.Add(du).Sub(dv),
			c.Add(du).Add(dv),
			c.Sub(du).Add(dv),
		}
		for i, p := range corners {
			q.Corners[i] = vec3Array(p)
			q.UVs[i] = quadUVs[(i+surf.Turns)%4]
		}
		quads[f] = q
	}
	return quads
}

func absDot(axis, v math.Vec3) float32 {
	d := axis.Dot(v)
	if d < 0 {
		return -d
	}
	return d
}

// quadIndices triangulates a quad
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}
