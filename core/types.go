package core

import (
	"box-editor/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// Dimensions are the unscaled edge lengths of a box primitive.
type Dimensions struct {
	Width, Height, Depth float32
}

// Size returns the dimensions as a vector (width along X, height along Y, depth along Z).
func (d Dimensions) Size() math.Vec3 {
	return math.Vec3{X: d.Width, Y: d.Height, Z: d.Depth}
}

type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
		Scale:    math.Vec3One,
	}
}

// Apply maps a point from local box space into world space.
func (t Transform) Apply(local math.Vec3) math.Vec3 {
	return t.Rotation.RotateVector(local.MulVec(t.Scale)).Add(t.Position)
}

func (t Transform) GetUp() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Up)
}
