package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"box-editor/core"
	"box-editor/math"
	"box-editor/scene"
)

func TestGroupTransformChainUndo(t *testing.T) {
	s := newTestScene()
	a := boxAt("A", 2, 1, 2, 0, 0, 0)
	b := boxAt("B", 1, 1, 1, 0, 1, 0)
	c := boxAt("C", 0.5, 0.5, 0.5, 0, 2, 0)
	place(t, s, a, b, c)
	before := []BoxState{a.State(), b.State(), c.State()}

	// Each box rises by the growth of the one below it.
	after := make([]BoxState, 3)
	copy(after, before)
	after[0].Dimensions.Height = 2
	after[0].Position.Y = 1
	after[1].Position.Y += 1
	after[2].Position.Y += 1

	cmd, err := NewGroupTransformCommand(s, []*Box{a, b, c}, before, after)
	require.NoError(t, err)
	assert.Equal(t, "Transform A and 2 stacked", cmd.Description())

	cmd.Execute()
	assert.Equal(t, after, []BoxState{a.State(), b.State(), c.State()})
	assert.Equal(t, []*Box{b, c}, s.Stacking().Discover(a))

	cmd.Undo()
	assert.Equal(t, before, []BoxState{a.State(), b.State(), c.State()})
	assert.Equal(t, []*Box{b, c}, s.Stacking().Discover(a))
}

func TestGroupUndoRunsInReverse(t *testing.T) {
	s := newTestScene()
	b := boxAt("A", 1, 1, 1, 0, 0, 0)
	place(t, s, b)

	// The same box twice: the second member's old state is only current
	// once the first member has been applied.
	s0 := b.State()
	s1, s2 := s0, s0
	s1.Position.X = 1
	s2.Position.X = 2

	cmd, err := NewGroupTransformCommand(s, []*Box{b, b}, []BoxState{s0, s1}, []BoxState{s1, s2})
	require.NoError(t, err)
	cmd.Execute()
	assert.Equal(t, s2, b.State())

	// Forward-order restore ends in the intermediate state.
	for i := range cmd.Boxes {
		s.setState(cmd.Boxes[i], cmd.OldStates[i])
	}
	assert.Equal(t, s1, b.State())

	s.setState(b, s2)
	cmd.Undo()
	assert.Equal(t, s0, b.State())
}

func TestSelectGroupCommand(t *testing.T) {
	s := newTestScene()
	a := boxAt("A", 1, 1, 1, 0, 0, 0)
	b := boxAt("B", 1, 1, 1, 0, 1, 0)
	place(t, s, a, b)

	old := []math.Vec3{a.Position(), b.Position()}
	moved := []math.Vec3{old[0].Add(math.Vec3{X: 3}), old[1].Add(math.Vec3{X: 3})}
	cmd, err := NewSelectGroupCommand(s, []*Box{a, b}, old, moved)
	require.NoError(t, err)
	assert.Equal(t, "Move A and 1 stacked", cmd.Description())

	cmd.Execute()
	assert.Equal(t, moved, []math.Vec3{a.Position(), b.Position()})
	cmd.Undo()
	assert.Equal(t, old, []math.Vec3{a.Position(), b.Position()})
}

func TestGroupCommandsCopyMembership(t *testing.T) {
	s := newTestScene()
	a, b := boxAt("A", 1, 1, 1, 0, 0, 0), boxAt("B", 1, 1, 1, 3, 0, 0)
	place(t, s, a, b)

	boxes := []*Box{a}
	moved := []math.Vec3{{X: 5, Y: 0.5}}
	cmd, err := NewSelectGroupCommand(s, boxes, []math.Vec3{a.Position()}, moved)
	require.NoError(t, err)
	boxes[0] = b
	moved[0] = math.Vec3{X: -5}

	cmd.Execute()
	assert.Equal(t, math.Vec3{X: 5, Y: 0.5}, a.Position())
	assert.Equal(t, math.Vec3{X: 3, Y: 0.5}, b.Position())
}

func TestGroupCommandsRejectMismatch(t *testing.T) {
	s := newTestScene()
	a := boxAt("A", 1, 1, 1, 0, 0, 0)

	_, err := NewGroupTransformCommand(s, []*Box{a}, nil, []BoxState{a.State()})
	assert.ErrorIs(t, err, ErrGroupMismatch)
	_, err = NewSelectGroupCommand(s, []*Box{a, nil}, make([]math.Vec3, 2), make([]math.Vec3, 2))
	assert.ErrorIs(t, err, ErrNilObject)
	_, err = NewGroupTransformCommand(nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNilObject)
}

func TestGroupTextureCommand(t *testing.T) {
	s := newTestScene()
	b := boxAt("A", 1, 1, 1, 0, 0, 0)
	place(t, s, b)
	oak := scene.NewMaterial("oak", core.ColorWhite, nil, 1)

	var cmds []Command
	for f := Face(0); f < FaceCount; f++ {
		cmd, err := NewTextureCommand(s, b, f, oak)
		require.NoError(t, err)
		cmds = append(cmds, cmd)
	}
	group, err := NewGroupTextureCommand(cmds)
	require.NoError(t, err)

	group.Execute()
	for f := Face(0); f < FaceCount; f++ {
		assert.Same(t, oak, b.Surface(f).Material)
	}
	assert.InDelta(t, 6, s.Ledger().Total(), 1e-9)

	group.Undo()
	for f := Face(0); f < FaceCount; f++ {
		assert.True(t, b.Surface(f).Material.IsDefault())
	}
	assert.InDelta(t, 0, s.Ledger().Total(), 1e-9)
}

func TestGroupTextureCommandRejects(t *testing.T) {
	s := newTestScene()
	b := boxAt("A", 1, 1, 1, 0, 0, 0)
	place(t, s, b)
	move, err := NewSelectObjectCommand(s, b, b.Position(), math.Vec3Zero)
	require.NoError(t, err)

	_, err = NewGroupTextureCommand([]Command{move})
	assert.ErrorIs(t, err, ErrNotTextureCommand)
	_, err = NewGroupTextureCommand(nil)
	assert.ErrorIs(t, err, ErrGroupMismatch)
	var typed *TextureCommand
	_, err = NewGroupTextureCommand([]Command{typed})
	assert.ErrorIs(t, err, ErrNilObject)
}

func TestBatchOrder(t *testing.T) {
	var trace []string
	v := 0
	batch, err := NewBatch("both",
		&counterCmd{name: "first", value: &v, delta: 1, trace: &trace},
		&counterCmd{name: "second", value: &v, delta: 2, trace: &trace})
	require.NoError(t, err)

	h := NewHistory(0)
	h.Execute(batch)
	h.Undo()
	h.Redo()
	assert.Equal(t, []string{
		"do first", "do second",
		"undo second", "undo first",
		"do first", "do second",
	}, trace)
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, h.UndoLen())

	_, err = NewBatch("bad", nil)
	assert.ErrorIs(t, err, ErrNilObject)
}
