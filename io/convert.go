package io

import (
	"box-editor/core"
	"box-editor/math"
)

// --- Helper conversions ---

func vec3Array(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func arrayVec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func quatArray(q math.Quaternion) [4]float32 {
	return [4]float32{q.X, q.Y, q.Z, q.W}
}

func arrayQuat(a [4]float32) math.Quaternion {
	return math.Quaternion{X: a[0], Y: a[1], Z: a[2], W: a[3]}
}

func dimsArray(d core.Dimensions) [3]float32 {
	return [3]float32{d.Width, d.Height, d.Depth}
}

func arrayDims(a [3]float32) core.Dimensions {
	return core.Dimensions{Width: a[0], Height: a[1], Depth: a[2]}
}

func colorArray64(c core.Color) [4]float64 {
	return [4]float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
}
