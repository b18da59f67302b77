package math

import "github.com/chewxy/math32"

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBox3 returns an inverted box that any ExpandByPoint call will replace.
func EmptyBox3() Box3 {
	inf := math32.Inf(1)
	return Box3{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

func (b Box3) ExpandByPoint(p Vec3) Box3 {
	b.Min = Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
	b.Max = Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	return b
}

func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// OverlapX returns the length of the X interval shared by b and other.
// Negative values are the gap between them.
func (b Box3) OverlapX(other Box3) float32 {
	return min(b.Max.X, other.Max.X) - max(b.Min.X, other.Min.X)
}

// OverlapZ is OverlapX along Z.
func (b Box3) OverlapZ(other Box3) float32 {
	return min(b.Max.Z, other.Max.Z) - max(b.Min.Z, other.Min.Z)
}
