package editor

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"box-editor/core"
	"box-editor/math"
	"box-editor/scene"
)

func TestAddObjectCommand(t *testing.T) {
	s := newTestScene()
	b := boxAt("A", 1, 1, 1, 0, 0, 0)
	cmd, err := NewAddObjectCommand(s, b)
	require.NoError(t, err)
	assert.Equal(t, "Add A", cmd.Description())

	cmd.Execute()
	assert.True(t, s.Contains(b))
	cmd.Undo()
	assert.False(t, s.Contains(b))
	assert.Zero(t, s.Len())
}

func TestDeleteObjectCommandRestoresIndex(t *testing.T) {
	s := newTestScene()
	a, b, c := boxAt("A", 1, 1, 1, 0, 0, 0), boxAt("B", 1, 1, 1, 3, 0, 0), boxAt("C", 1, 1, 1, 6, 0, 0)
	place(t, s, a, b, c)

	cmd, err := NewDeleteObjectCommand(s, b)
	require.NoError(t, err)
	assert.Equal(t, 1, cmd.Index)
	assert.Empty(t, cmd.Stacked)

	cmd.Execute()
	assert.Equal(t, []*Box{a, c}, s.Objects())
	cmd.Undo()
	assert.Equal(t, []*Box{a, b, c}, s.Objects())
}

func TestDeleteObjectCommandSettlesStack(t *testing.T) {
	s := newTestScene()
	base := boxAt("base", 2, 1, 2, 0, 0, 0)
	mid := boxAt("mid", 1, 1, 1, 0, 1, 0)
	top := boxAt("top", 0.5, 0.5, 0.5, 0, 2, 0)
	place(t, s, base, mid, top)
	midBefore, topBefore := mid.State(), top.State()

	cmd, err := NewDeleteObjectCommand(s, base)
	require.NoError(t, err)
	assert.Equal(t, []*Box{mid, top}, cmd.Stacked)

	cmd.Execute()
	assert.False(t, s.Contains(base))
	assert.InDelta(t, 0, mid.Bounds().Min.Y, 1e-6)
	assert.InDelta(t, 1, top.Bounds().Min.Y, 1e-6)

	cmd.Undo()
	assert.Equal(t, 0, s.IndexOf(base))
	assert.Equal(t, midBefore, mid.State())
	assert.Equal(t, topBefore, top.State())
}

func TestDeleteObjectCommandRejects(t *testing.T) {
	s := newTestScene()
	_, err := NewDeleteObjectCommand(s, nil)
	assert.ErrorIs(t, err, ErrNilObject)

	_, err = NewDeleteObjectCommand(s, boxAt("loose", 1, 1, 1, 0, 0, 0))
	assert.ErrorIs(t, err, ErrNotInScene)
}

func TestTransformCommand(t *testing.T) {
	s := newTestScene()
	b := boxAt("A", 1, 1, 1, 0, 0, 0)
	place(t, s, b)
	oldState := b.State()
	newState := oldState
	newState.Dimensions = core.Dimensions{Width: 2, Height: 3, Depth: 1}
	newState.Position = math.Vec3{Y: 1.5}
	newState.Scale = math.Vec3{X: 1, Y: 1, Z: 2}

	cmd, err := NewTransformCommand(s, b, oldState, newState)
	require.NoError(t, err)
	cmd.Execute()
	assert.Equal(t, newState, b.State())
	cmd.Undo()
	assert.Equal(t, oldState, b.State())
	cmd.Execute()
	assert.Equal(t, newState, b.State())
}

func TestControlledBoxesRejectCommands(t *testing.T) {
	s := newTestScene()
	b := boxAt("A", 1, 1, 1, 0, 0, 0)
	place(t, s, b)
	b.controlled = true

	_, err := NewTransformCommand(s, b, b.State(), b.State())
	assert.ErrorIs(t, err, ErrStackControlled)
	_, err = NewSelectObjectCommand(s, b, b.Position(), math.Vec3{X: 1})
	assert.ErrorIs(t, err, ErrStackControlled)
	_, err = NewRotationCommand(s, b, b.Rotation(), math.QuaternionIdentity())
	assert.ErrorIs(t, err, ErrStackControlled)

	b.controlled = false
	_, err = NewTransformCommand(s, b, b.State(), b.State())
	assert.NoError(t, err)
}

func TestNilTargetsRejected(t *testing.T) {
	s := newTestScene()
	_, err := NewAddObjectCommand(s, nil)
	assert.ErrorIs(t, err, ErrNilObject)
	_, err = NewTransformCommand(nil, boxAt("A", 1, 1, 1, 0, 0, 0), BoxState{}, BoxState{})
	assert.ErrorIs(t, err, ErrNilObject)
	_, err = NewTextureCommand(s, nil, FaceTop, nil)
	assert.ErrorIs(t, err, ErrNilObject)
}

func TestSelectAndRotationCommands(t *testing.T) {
	s := newTestScene()
	b := boxAt("A", 1, 1, 1, 0, 0, 0)
	place(t, s, b)
	start := b.Position()

	move, err := NewSelectObjectCommand(s, b, start, math.Vec3{X: 4, Y: 0.5})
	require.NoError(t, err)
	move.Execute()
	assert.Equal(t, math.Vec3{X: 4, Y: 0.5}, b.Position())
	move.Undo()
	assert.Equal(t, start, b.Position())

	q := math.QuaternionFromAxisAngle(math.Vec3Up, 1)
	rot, err := NewRotationCommand(s, b, b.Rotation(), q)
	require.NoError(t, err)
	rot.Execute()
	assert.Equal(t, q, b.Rotation())
	rot.Undo()
	assert.True(t, b.Rotation().IsIdentity())
}

func TestTextureCommands(t *testing.T) {
	s := newTestScene()
	b := boxAt("A", 2, 1, 1, 0, 0, 0)
	place(t, s, b)
	oak := scene.NewMaterial("oak", core.ColorWhite, nil, 3)

	_, err := NewTextureCommand(s, b, Face(7), oak)
	assert.ErrorIs(t, err, ErrInvalidFace)
	_, err = NewRemoveTextureCommand(s, b, FaceTop)
	assert.ErrorIs(t, err, ErrNoTexture)
	_, err = NewRotateTextureCommand(s, b, FaceTop, 1)
	assert.ErrorIs(t, err, ErrNoTexture)

	apply, err := NewTextureCommand(s, b, FaceTop, oak)
	require.NoError(t, err)
	apply.Execute()
	assert.Same(t, oak, b.Surface(FaceTop).Material)
	assert.InDelta(t, 6, s.Ledger().Total(), 1e-9)

	turn, err := NewRotateTextureCommand(s, b, FaceTop, -1)
	require.NoError(t, err)
	assert.Equal(t, 3, turn.NewTurns)
	turn.Execute()
	assert.Equal(t, 3, b.Surface(FaceTop).Turns)

	remove, err := NewRemoveTextureCommand(s, b, FaceTop)
	require.NoError(t, err)
	remove.Execute()
	assert.True(t, b.Surface(FaceTop).Material.IsDefault())
	assert.InDelta(t, 0, s.Ledger().Total(), 1e-9)

	remove.Undo()
	turn.Undo()
	apply.Undo()
	assert.True(t, b.Surface(FaceTop).Material.IsDefault())
	assert.Zero(t, b.Surface(FaceTop).Turns)
	assert.InDelta(t, 0, s.Ledger().Total(), 1e-9)

	reset, err := NewTextureCommand(s, b, FaceTop, nil)
	require.NoError(t, err)
	assert.True(t, reset.NewMaterial.IsDefault())
}

func TestLedgerFollowsCommands(t *testing.T) {
	var hookCalls int
	var lastTotal float64
	s := NewScene(DefaultStackingOptions(), NewLedger(func(total float64) {
		hookCalls++
		lastTotal = total
	}))
	oak := scene.NewMaterial("oak", core.ColorWhite, nil, 1.5)
	b := boxAt("A", 1, 1, 1, 0, 0, 0)
	b.surfaces[FaceTop].Material = oak

	h := NewHistory(0)
	add, _ := NewAddObjectCommand(s, b)
	h.Execute(add)
	assert.InDelta(t, 1.5, s.Ledger().Total(), 1e-9)

	grown := b.State()
	grown.Dimensions.Width = 2
	grown.Dimensions.Depth = 3
	grow, _ := NewTransformCommand(s, b, b.State(), grown)
	h.Execute(grow)
	assert.InDelta(t, 9, s.Ledger().Total(), 1e-9)

	paint, _ := NewTextureCommand(s, b, FaceFront, oak)
	h.Execute(paint)
	assert.InDelta(t, scenePrice(s), s.Ledger().Total(), 1e-9)

	calls := hookCalls
	turn, _ := NewRotateTextureCommand(s, b, FaceFront, 1)
	h.Execute(turn)
	assert.Equal(t, calls+1, hookCalls, "hook fires for zero-delta priced changes")

	for h.Undo() {
		assert.InDelta(t, scenePrice(s), s.Ledger().Total(), 1e-9)
	}
	assert.InDelta(t, 0, s.Ledger().Total(), 1e-9)
	for h.Redo() {
		assert.InDelta(t, scenePrice(s), s.Ledger().Total(), 1e-9)
	}
	assert.InDelta(t, lastTotal, s.Ledger().Total(), 1e-12)
}

func TestDeleteObjectCommandSettlesOnNeighbour(t *testing.T) {
	s := newTestScene()
	a := boxAt("A", 1, 1, 1, 0, 0, 0)
	d := boxAt("D", 1, 1, 1, 1, 0, 0)
	bridge := boxAt("bridge", 2, 1, 1, 0.5, 1, 0)
	lid := boxAt("lid", 0.5, 0.5, 0.5, 0, 2, 0)
	place(t, s, a, d, bridge, lid)
	before := bridge.State()

	cmd, err := NewDeleteObjectCommand(s, a)
	require.NoError(t, err)
	assert.Equal(t, []*Box{bridge, lid}, cmd.Stacked)

	cmd.Execute()
	assert.InDelta(t, 1, bridge.Bounds().Min.Y, 1e-6)
	assert.InDelta(t, 2, lid.Bounds().Min.Y, 1e-6)
	assert.InDelta(t, scenePrice(s), s.Ledger().Total(), 1e-9)

	cmd.Undo()
	assert.Equal(t, before, bridge.State())
	assert.True(t, s.Contains(a))
}

func TestAddObjectCommandRejectsNonFinite(t *testing.T) {
	s := newTestScene()
	nan := boxAt("nan", 1, 1, 1, 0, 0, 0)
	nan.dims.Height = math32.NaN()
	_, err := NewAddObjectCommand(s, nan)
	assert.ErrorIs(t, err, ErrNotFinite)

	far := boxAt("far", 1, 1, 1, math32.Inf(1), 0, 0)
	_, err = NewAddObjectCommand(s, far)
	assert.ErrorIs(t, err, ErrNotFinite)
	assert.Zero(t, s.Len())
}
