package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}

	dot := v1.Dot(v2)
	if dot != 32 {
		t.Errorf("Dot: expected 32, got %v", dot)
	}

	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	normalized := NewVec3(3, 0, 0).Normalize()
	if normalized != NewVec3(1, 0, 0) {
		t.Errorf("Normalize: expected (1,0,0), got %v", normalized)
	}
	if zero := Vec3Zero.Normalize(); zero != Vec3Zero {
		t.Errorf("Normalize: zero vector should stay zero, got %v", zero)
	}
}

func TestQuaternionRotation(t *testing.T) {
	// 90 degrees around Y takes +X to -Z
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))
	result := q.RotateVector(Vec3Right)
	if !result.ApproxEqual(NewVec3(0, 0, -1), 0.001) {
		t.Errorf("Quaternion rotation: expected approximately (0,0,-1), got %v", result)
	}

	back := q.Conjugate().RotateVector(result)
	if !back.ApproxEqual(Vec3Right, 0.001) {
		t.Errorf("Conjugate: expected to undo rotation, got %v", back)
	}
}

func TestQuaternionIdentity(t *testing.T) {
	q := QuaternionIdentity()
	if !q.IsIdentity() {
		t.Errorf("QuaternionIdentity: expected identity, got %v", q)
	}
	if v := q.RotateVector(NewVec3(1, 2, 3)); v != NewVec3(1, 2, 3) {
		t.Errorf("Identity rotation changed vector: %v", v)
	}
}

func TestBox3Overlap(t *testing.T) {
	a := Box3{Min: NewVec3(0, 0, 0), Max: NewVec3(2, 1, 2)}

	tests := []struct {
		name     string
		other    Box3
		overlapX float32
		overlapZ float32
	}{
		{"inside", Box3{Min: NewVec3(0.5, 1, 0.5), Max: NewVec3(1.5, 2, 1.5)}, 1, 1},
		{"touching edge", Box3{Min: NewVec3(2, 0, 0), Max: NewVec3(3, 1, 2)}, 0, 2},
		{"apart", Box3{Min: NewVec3(3, 0, 3), Max: NewVec3(4, 1, 4)}, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.OverlapX(tt.other); got != tt.overlapX {
				t.Errorf("OverlapX: expected %v, got %v", tt.overlapX, got)
			}
			if got := a.OverlapZ(tt.other); got != tt.overlapZ {
				t.Errorf("OverlapZ: expected %v, got %v", tt.overlapZ, got)
			}
		})
	}
}

func TestBox3ExpandByPoint(t *testing.T) {
	b := EmptyBox3().
		ExpandByPoint(NewVec3(1, -1, 2)).
		ExpandByPoint(NewVec3(-1, 3, 0))

	if b.Min != NewVec3(-1, -1, 0) || b.Max != NewVec3(1, 3, 2) {
		t.Errorf("ExpandByPoint: got %v", b)
	}
	if b.Center() != NewVec3(0, 1, 1) {
		t.Errorf("Center: got %v", b.Center())
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}
