package editor

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"box-editor/math"
)

func TestRaycastScene(t *testing.T) {
	s := newTestScene()
	near := boxAt("near", 1, 1, 1, 0, 0, 0)
	far := boxAt("far", 1, 1, 1, 0, 0, -5)
	place(t, s, far, near)

	hit := RaycastScene(Ray{Origin: math.Vec3{Y: 0.5, Z: 10}, Direction: math.Vec3{Z: -1}}, s)
	require.True(t, hit.Hit)
	assert.Same(t, near, hit.Box)
	assert.Equal(t, FaceFront, hit.Face)
	assert.InDelta(t, 9.5, hit.Distance, 1e-5)

	hit = RaycastScene(Ray{Origin: math.Vec3{X: 0.2, Y: 5, Z: 0.1}, Direction: math.Vec3{Y: -1}}, s)
	require.True(t, hit.Hit)
	assert.Equal(t, FaceTop, hit.Face)
	assert.InDelta(t, 1, hit.Point.Y, 1e-5)

	hit = RaycastScene(Ray{Origin: math.Vec3{X: 5, Y: 0.5}, Direction: math.Vec3{Z: -1}}, s)
	assert.False(t, hit.Hit)
}

func TestRaycastRotatedBox(t *testing.T) {
	s := newTestScene()
	b := boxAt("A", 2, 1, 1, 0, 0, 0)
	place(t, s, b)
	rot, _ := NewRotationCommand(s, b, b.Rotation(), math.QuaternionFromAxisAngle(math.Vec3Up, math32.Pi/2))
	rot.Execute()

	// after a quarter turn the local +X face looks down world -Z
	hit := RaycastScene(Ray{Origin: math.Vec3{Y: 0.5, Z: -10}, Direction: math.Vec3{Z: 1}}, s)
	require.True(t, hit.Hit)
	assert.Equal(t, FaceRight, hit.Face)
	assert.InDelta(t, 9, hit.Distance, 1e-4)
}
