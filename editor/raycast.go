package editor

import (
	stdmath "math"

	"box-editor/math"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// HitResult stores the result of a ray intersection test
type HitResult struct {
	Hit      bool
	Distance float32
	Point    math.Vec3
	Box      *Box
	Face     Face
}

// RaycastScene tests a ray against all boxes in the scene, returns closest hit
func RaycastScene(ray Ray, s *Scene) HitResult {
	closest := HitResult{Distance: float32(stdmath.MaxFloat32), Face: -1}
	for _, b := range s.objects {
		// Broad phase: world AABB
		if t, hit := rayAABBIntersect(ray, b.Bounds()); !hit || t > closest.Distance {
			continue
		}
		if result := rayBoxIntersect(ray, b); result.Hit && result.Distance < closest.Distance {
			closest = result
		}
	}
	return closest
}

// rayAABBIntersect tests ray-AABB intersection
func rayAABBIntersect(ray Ray, aabb math.Box3) (float32, bool) {
	t, _, hit := slabs(ray, aabb)
	return t, hit
}

// rayBoxIntersect intersects the ray with b in its local frame, so rotated
// boxes report the face that was actually hit.
func rayBoxIntersect(ray Ray, b *Box) HitResult {
	inv := b.transform.Rotation.Conjugate()
	scale := b.transform.Scale
	local := Ray{
		Origin:    divide(inv.RotateVector(ray.Origin.Sub(b.transform.Position)), scale),
		Direction: divide(inv.RotateVector(ray.Direction), scale),
	}
	half := b.dims.Size().Mul(0.5)
	t, axis, hit := slabs(local, math.Box3{Min: half.Mul(-1), Max: half})
	if !hit || t < 0 {
		return HitResult{Face: -1}
	}
	face := Face(axis * 2)
	if component(local.Direction, axis) > 0 {
		face++ // entered through the negative side
	}
	return HitResult{
		Hit:      true,
		Distance: t,
		Point:    ray.Origin.Add(ray.Direction.Mul(t)),
		Box:      b,
		Face:     face,
	}
}

// slabs returns the entry distance and the axis of the entry plane.
func slabs(ray Ray, aabb math.Box3) (float32, int, bool) {
	tmin, tmax := float32(-stdmath.MaxFloat32), float32(stdmath.MaxFloat32)
	axis := 0
	for i := 0; i < 3; i++ {
		o, d := component(ray.Origin, i), component(ray.Direction, i)
		lo, hi := component(aabb.Min, i), component(aabb.Max, i)
		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin, axis = t1, i
		}
		tmax = min(tmax, t2)
	}
	if tmax < 0 || tmin > tmax {
		return 0, 0, false
	}
	return tmin, axis, true
}

func divide(v, by math.Vec3) math.Vec3 {
	return math.Vec3{X: v.X / by.X, Y: v.Y / by.Y, Z: v.Z / by.Z}
}
