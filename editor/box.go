package editor

import (
	"fmt"
	"sync/atomic"

	"github.com/chewxy/math32"

	"box-editor/core"
	"box-editor/math"
	"box-editor/scene"
)

// Face indexes the six sides of a box. The order matches the material slots
// of a box geometry: +X, -X, +Y, -Y, +Z, -Z.
type Face int

const (
	FaceRight Face = iota
	FaceLeft
	FaceTop
	FaceBottom
	FaceFront
	FaceBack

	FaceCount = 6
)

var faceNames = [FaceCount]string{"right", "left", "top", "bottom", "front", "back"}

func (f Face) Valid() bool { return f >= 0 && f < FaceCount }

func (f Face) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// Axis returns the local axis the face is perpendicular to (0=X, 1=Y, 2=Z)
// and the sign of its outward normal.
func (f Face) Axis() (axis int, sign float32) {
	sign = 1
	if f%2 == 1 {
		sign = -1
	}
	return int(f) / 2, sign
}

// Normal is the outward normal of the face in local space.
func (f Face) Normal() math.Vec3 {
	axis, sign := f.Axis()
	switch axis {
	case 0:
		return math.Vec3{X: sign}
	case 1:
		return math.Vec3{Y: sign}
	default:
		return math.Vec3{Z: sign}
	}
}

// Surface is what one face of a box shows.
type Surface struct {
	Material *scene.Material
	Turns    int // quarter turns of the texture, 0-3
}

// BoxState is the snapshot transform commands replay: a box primitive is fully
// described by its dimensions and pose, so no mesh data is stored.
type BoxState struct {
	Dimensions core.Dimensions
	Position   math.Vec3
	Scale      math.Vec3
}

// Size returns the world-space edge lengths.
func (s BoxState) Size() math.Vec3 {
	return s.Dimensions.Size().MulVec(s.Scale)
}

var boxIDCounter atomic.Uint32

// Box is a placed rectangular volume. Its state can only be changed by
// commands executed through History; everything exported here is read-only.
type Box struct {
	id         uint32
	name       string
	dims       core.Dimensions
	transform  core.Transform
	surfaces   [FaceCount]Surface
	controlled bool
}

// NewBox creates a box centred at position with default surfaces. The box is
// not part of any scene until an AddObjectCommand inserts it.
func NewBox(name string, dims core.Dimensions, position math.Vec3) *Box {
	b := &Box{
		id:        boxIDCounter.Add(1),
		name:      name,
		dims:      dims,
		transform: core.NewTransform(),
	}
	b.transform.Position = position
	for i := range b.surfaces {
		b.surfaces[i] = Surface{Material: scene.DefaultMaterial()}
	}
	if b.name == "" {
		b.name = fmt.Sprintf("Box %d", b.id)
	}
	return b
}

func (b *Box) ID() uint32                  { return b.id }
func (b *Box) Name() string                { return b.name }
func (b *Box) Dimensions() core.Dimensions { return b.dims }
func (b *Box) Transform() core.Transform   { return b.transform }
func (b *Box) Position() math.Vec3         { return b.transform.Position }
func (b *Box) Rotation() math.Quaternion   { return b.transform.Rotation }
func (b *Box) Scale() math.Vec3            { return b.transform.Scale }

// Controlled reports whether the box is currently carried by a gesture on the
// box beneath it. Controlled boxes cannot get commands of their own.
func (b *Box) Controlled() bool { return b.controlled }

func (b *Box) Surface(f Face) Surface {
	if !f.Valid() {
		return Surface{}
	}
	return b.surfaces[f]
}

// State snapshots the dimensions and pose used by transform commands.
func (b *Box) State() BoxState {
	return BoxState{
		Dimensions: b.dims,
		Position:   b.transform.Position,
		Scale:      b.transform.Scale,
	}
}

// Size returns the world-space edge lengths, ignoring rotation.
func (b *Box) Size() math.Vec3 {
	return b.State().Size()
}

// Bounds returns the world-space axis-aligned bounding box.
func (b *Box) Bounds() math.Box3 {
	half := b.dims.Size().Mul(0.5)
	if b.transform.Rotation.IsIdentity() {
		ext := half.MulVec(b.transform.Scale)
		return math.Box3{
			Min: b.transform.Position.Sub(ext),
			Max: b.transform.Position.Add(ext),
		}
	}
	bounds := math.EmptyBox3()
	for i := 0; i < 8; i++ {
		corner := math.Vec3{X: half.X, Y: half.Y, Z: half.Z}
		if i&1 != 0 {
			corner.X = -corner.X
		}
		if i&2 != 0 {
			corner.Y = -corner.Y
		}
		if i&4 != 0 {
			corner.Z = -corner.Z
		}
		bounds = bounds.ExpandByPoint(b.transform.Apply(corner))
	}
	return bounds
}

// FaceArea returns the world-space area of one face.
func (b *Box) FaceArea(f Face) float64 {
	size := b.Size()
	axis, _ := f.Axis()
	switch axis {
	case 0:
		return float64(size.Y) * float64(size.Z)
	case 1:
		return float64(size.X) * float64(size.Z)
	default:
		return float64(size.X) * float64(size.Y)
	}
}

// Price is the sum over faces of material price times face area.
func (b *Box) Price() float64 {
	var total float64
	for f := Face(0); f < FaceCount; f++ {
		if m := b.surfaces[f].Material; m != nil {
			total += m.Price * b.FaceArea(f)
		}
	}
	return total
}

func (b *Box) String() string {
	return fmt.Sprintf("%s#%d", b.name, b.id)
}

func (b *Box) setState(s BoxState) {
	b.dims = s.Dimensions
	b.transform.Position = s.Position
	b.transform.Scale = s.Scale
}

// BoxSpec describes a box to be created, e.g. from a saved layout.
type BoxSpec struct {
	Name       string
	Dimensions core.Dimensions
	Position   math.Vec3
	Rotation   math.Quaternion
	Scale      math.Vec3
	Surfaces   [FaceCount]Surface
}

// Spec describes b so that Build recreates an equivalent box.
func (b *Box) Spec() BoxSpec {
	return BoxSpec{
		Name:       b.name,
		Dimensions: b.dims,
		Position:   b.transform.Position,
		Rotation:   b.transform.Rotation,
		Scale:      b.transform.Scale,
		Surfaces:   b.surfaces,
	}
}

func (b *Box) finite() bool {
	t := b.transform
	vals := [...]float32{
		b.dims.Width, b.dims.Height, b.dims.Depth,
		t.Position.X, t.Position.Y, t.Position.Z,
		t.Scale.X, t.Scale.Y, t.Scale.Z,
		t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W,
	}
	for _, v := range vals {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Build creates a new box from the spec. Zero rotation and scale mean
// identity; faces without a material get the default one.
func (s BoxSpec) Build() *Box {
	b := NewBox(s.Name, s.Dimensions, s.Position)
	if s.Rotation != (math.Quaternion{}) {
		b.transform.Rotation = s.Rotation
	}
	if s.Scale != (math.Vec3{}) {
		b.transform.Scale = s.Scale
	}
	for f, surf := range s.Surfaces {
		if surf.Material != nil {
			b.surfaces[f].Material = surf.Material
		}
		b.surfaces[f].Turns = ((surf.Turns % 4) + 4) % 4
	}
	return b
}
