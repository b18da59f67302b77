package editor

import (
	"context"
	"fmt"

	"github.com/chewxy/math32"

	"box-editor/core"
	"box-editor/math"
	"box-editor/scene"
)

// AddBox records adding b at the end of the scene.
func (e *Editor) AddBox(b *Box) (Command, error) {
	if e.gesture != nil {
		return nil, ErrGestureActive
	}
	cmd, err := NewAddObjectCommand(e.Scene, b)
	if err != nil {
		return nil, err
	}
	return e.execute(cmd), nil
}

// DrawBox adds a thin box spanning the XZ rectangle between from and to,
// resting on the plane at height planeY.
func (e *Editor) DrawBox(name string, from, to math.Vec3, planeY float32) (*Box, error) {
	w := math32.Abs(to.X - from.X)
	d := math32.Abs(to.Z - from.Z)
	if w < e.opts.MinSize || d < e.opts.MinSize {
		return nil, fmt.Errorf("%.3gx%.3g: %w", w, d, ErrTooSmall)
	}
	h := e.opts.InitialHeight
	pos := math.Vec3{X: (from.X + to.X) / 2, Y: planeY + h/2, Z: (from.Z + to.Z) / 2}
	b := NewBox(name, core.Dimensions{Width: w, Height: h, Depth: d}, pos)
	if _, err := e.AddBox(b); err != nil {
		return nil, err
	}
	e.Selection.SelectSingle(b)
	return b, nil
}

// Import adds every spec as one undoable step and returns the new boxes.
func (e *Editor) Import(specs []BoxSpec) ([]*Box, error) {
	if e.gesture != nil {
		return nil, ErrGestureActive
	}
	if len(specs) == 0 {
		return nil, nil
	}
	boxes := make([]*Box, len(specs))
	cmds := make([]Command, len(specs))
	for i, spec := range specs {
		boxes[i] = spec.Build()
		cmd, err := NewAddObjectCommand(e.Scene, boxes[i])
		if err != nil {
			return nil, err
		}
		cmds[i] = cmd
	}
	batch, err := NewBatch(fmt.Sprintf("Import %d boxes", len(specs)), cmds...)
	if err != nil {
		return nil, err
	}
	e.execute(batch)
	return boxes, nil
}

// Delete removes b; boxes stacked on it settle onto what remains below.
func (e *Editor) Delete(b *Box) (Command, error) {
	if e.gesture != nil {
		return nil, ErrGestureActive
	}
	if err := e.checkEditable(b); err != nil {
		return nil, err
	}
	cmd, err := NewDeleteObjectCommand(e.Scene, b)
	if err != nil {
		return nil, err
	}
	return e.execute(cmd), nil
}

// DeleteSelected deletes the selected boxes one command each.
func (e *Editor) DeleteSelected() error {
	for _, b := range append([]*Box(nil), e.Selection.Objects...) {
		if !e.Scene.Contains(b) {
			continue
		}
		if _, err := e.Delete(b); err != nil {
			return err
		}
	}
	e.Selection.Clear()
	e.StatusText = "Deleted"
	return nil
}

// Rotate turns b about the vertical axis through its centre. Boxes stacked
// on it turn with it and orbit the same axis.
func (e *Editor) Rotate(b *Box, angle float32) (Command, error) {
	if e.gesture != nil {
		return nil, ErrGestureActive
	}
	if err := e.checkEditable(b); err != nil {
		return nil, err
	}
	turn := math.QuaternionFromAxisAngle(math.Vec3Up, angle)
	rot, err := NewRotationCommand(e.Scene, b, b.Rotation(), turn.Mul(b.Rotation()).Normalize())
	if err != nil {
		return nil, err
	}
	stacked := e.Scene.Stacking().Discover(b)
	if len(stacked) == 0 {
		return e.execute(rot), nil
	}

	pivot := b.Position()
	cmds := []Command{rot}
	oldPos := make([]math.Vec3, len(stacked))
	newPos := make([]math.Vec3, len(stacked))
	for i, o := range stacked {
		rc, err := NewRotationCommand(e.Scene, o, o.Rotation(), turn.Mul(o.Rotation()).Normalize())
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, rc)
		oldPos[i] = o.Position()
		newPos[i] = pivot.Add(turn.RotateVector(oldPos[i].Sub(pivot)))
	}
	orbit, err := NewSelectGroupCommand(e.Scene, stacked, oldPos, newPos)
	if err != nil {
		return nil, err
	}
	desc := groupDescription("Rotate", append([]*Box{b}, stacked...))
	batch, err := NewBatch(desc, append(cmds, orbit)...)
	if err != nil {
		return nil, err
	}
	return e.execute(batch), nil
}

// ApplyTexture loads the named material and puts it on one face. The load
// may block; the box is checked again once it completes.
func (e *Editor) ApplyTexture(ctx context.Context, b *Box, f Face, name string) (Command, error) {
	if err := checkFace(e.Scene, b, f); err != nil {
		return nil, err
	}
	m, err := e.material(ctx, b, name)
	if err != nil {
		return nil, err
	}
	cmd, err := NewTextureCommand(e.Scene, b, f, m)
	if err != nil {
		return nil, err
	}
	return e.execute(cmd), nil
}

// ApplyTextureAll puts the named material on all six faces as one step.
func (e *Editor) ApplyTextureAll(ctx context.Context, b *Box, name string) (Command, error) {
	if err := checkTarget(e.Scene, b); err != nil {
		return nil, err
	}
	m, err := e.material(ctx, b, name)
	if err != nil {
		return nil, err
	}
	cmds := make([]Command, 0, FaceCount)
	for f := Face(0); f < FaceCount; f++ {
		cmd, err := NewTextureCommand(e.Scene, b, f, m)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	group, err := NewGroupTextureCommand(cmds)
	if err != nil {
		return nil, err
	}
	group.desc = fmt.Sprintf("Apply %s to %s", m.Name, b.name)
	return e.execute(group), nil
}

// RemoveTexture resets one face to the default material.
func (e *Editor) RemoveTexture(b *Box, f Face) (Command, error) {
	if e.gesture != nil {
		return nil, ErrGestureActive
	}
	cmd, err := NewRemoveTextureCommand(e.Scene, b, f)
	if err != nil {
		return nil, err
	}
	return e.execute(cmd), nil
}

// RotateTexture turns the texture on one face a quarter turn.
func (e *Editor) RotateTexture(b *Box, f Face) (Command, error) {
	if e.gesture != nil {
		return nil, ErrGestureActive
	}
	cmd, err := NewRotateTextureCommand(e.Scene, b, f, 1)
	if err != nil {
		return nil, err
	}
	return e.execute(cmd), nil
}

func (e *Editor) material(ctx context.Context, b *Box, name string) (*scene.Material, error) {
	if e.gesture != nil {
		return nil, ErrGestureActive
	}
	if e.Textures == nil {
		return nil, fmt.Errorf("%s: %w", name, scene.ErrUnknownTexture)
	}
	m, err := e.Textures.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if !e.Scene.Contains(b) {
		return nil, fmt.Errorf("%v: %w", b, ErrNotInScene)
	}
	if e.gesture != nil {
		return nil, ErrGestureActive
	}
	return m, nil
}

// ExtrudeGesture pushes one face of a box along its normal. Boxes stacked on
// the base rise and fall with its top until End or Cancel.
type ExtrudeGesture struct {
	e            *Editor
	base         *Box
	face         Face
	start        BoxState
	top          float32
	stacked      []*Box
	stackedStart []BoxState
	done         bool
}

// BeginExtrude starts extruding face f of b.
func (e *Editor) BeginExtrude(b *Box, f Face) (*ExtrudeGesture, error) {
	if err := e.checkEditable(b); err != nil {
		return nil, err
	}
	if !f.Valid() {
		return nil, fmt.Errorf("%v: %w", f, ErrInvalidFace)
	}
	g := &ExtrudeGesture{
		e:     e,
		base:  b,
		face:  f,
		start: b.State(),
		top:   b.Bounds().Max.Y,
	}
	if err := e.begin(g); err != nil {
		return nil, err
	}
	g.stacked = e.Scene.Stacking().Discover(b)
	g.stackedStart = boxStates(g.stacked)
	setControlled(g.stacked, true)
	return g, nil
}

func (g *ExtrudeGesture) Base() *Box      { return g.base }
func (g *ExtrudeGesture) Stacked() []*Box { return append([]*Box(nil), g.stacked...) }

// Update sets the live extrusion to amount world units along the face
// normal. Negative amounts shrink the box down to the minimum size.
func (g *ExtrudeGesture) Update(amount float32) error {
	if g.done {
		return ErrGestureFinished
	}
	g.e.Scene.setState(g.base, g.stateFor(amount))
	rise := g.base.Bounds().Max.Y - g.top
	for i, o := range g.stacked {
		st := g.stackedStart[i]
		st.Position.Y += rise
		g.e.Scene.setState(o, st)
	}
	return nil
}

func (g *ExtrudeGesture) stateFor(amount float32) BoxState {
	st := g.start
	axis, _ := g.face.Axis()
	scale := component(st.Scale, axis)
	if scale == 0 {
		return st
	}
	size := component(st.Dimensions.Size(), axis)
	next := max(size+amount/scale, g.e.opts.MinSize)
	moved := (next - size) * scale
	st.Dimensions = withComponent(st.Dimensions, axis, next)
	offset := g.face.Normal().Mul(moved / 2)
	st.Position = st.Position.Add(g.base.transform.Rotation.RotateVector(offset))
	return st
}

// End records the extrusion. It returns a nil command when nothing changed.
func (g *ExtrudeGesture) End() (Command, error) {
	if g.done {
		return nil, ErrGestureFinished
	}
	final := g.base.State()
	finalStacked := boxStates(g.stacked)
	g.finish()
	if final == g.start {
		return nil, nil
	}

	var cmd Command
	var err error
	if len(g.stacked) == 0 {
		cmd, err = NewTransformCommand(g.e.Scene, g.base, g.start, final)
	} else {
		cmd, err = NewGroupTransformCommand(g.e.Scene,
			append([]*Box{g.base}, g.stacked...),
			append([]BoxState{g.start}, g.stackedStart...),
			append([]BoxState{final}, finalStacked...))
	}
	if err != nil {
		return nil, err
	}
	return g.e.execute(cmd), nil
}

// Cancel restores the state the gesture started from.
func (g *ExtrudeGesture) Cancel() {
	if !g.done {
		g.finish()
	}
}

func (g *ExtrudeGesture) finish() {
	for i := len(g.stacked) - 1; i >= 0; i-- {
		g.e.Scene.setState(g.stacked[i], g.stackedStart[i])
	}
	g.e.Scene.setState(g.base, g.start)
	setControlled(g.stacked, false)
	g.done = true
	g.e.end(g)
}

// MoveGesture drags a box across the XZ plane. The box drops onto the top of
// whatever lies beneath it, or the ground; stacked boxes travel with it.
type MoveGesture struct {
	e            *Editor
	base         *Box
	start        math.Vec3
	startBounds  math.Box3
	stacked      []*Box
	stackedStart []math.Vec3
	exclude      map[*Box]bool
	done         bool
}

// BeginMove starts moving b.
func (e *Editor) BeginMove(b *Box) (*MoveGesture, error) {
	if err := e.checkEditable(b); err != nil {
		return nil, err
	}
	g := &MoveGesture{
		e:           e,
		base:        b,
		start:       b.Position(),
		startBounds: b.Bounds(),
		exclude:     map[*Box]bool{b: true},
	}
	if err := e.begin(g); err != nil {
		return nil, err
	}
	g.stacked = e.Scene.Stacking().Discover(b)
	g.stackedStart = make([]math.Vec3, len(g.stacked))
	for i, o := range g.stacked {
		g.stackedStart[i] = o.Position()
		g.exclude[o] = true
	}
	setControlled(g.stacked, true)
	return g, nil
}

func (g *MoveGesture) Base() *Box      { return g.base }
func (g *MoveGesture) Stacked() []*Box { return append([]*Box(nil), g.stacked...) }

// Update moves the base centre to target in XZ; the height is derived from
// what lies beneath the new footprint.
func (g *MoveGesture) Update(target math.Vec3) error {
	if g.done {
		return ErrGestureFinished
	}
	dx, dz := target.X-g.start.X, target.Z-g.start.Z
	footprint := g.startBounds
	footprint.Min.X += dx
	footprint.Max.X += dx
	footprint.Min.Z += dz
	footprint.Max.Z += dz
	floor := g.e.Scene.Stacking().RestingHeight(footprint, g.exclude)
	delta := math.Vec3{X: dx, Y: floor - g.startBounds.Min.Y, Z: dz}

	g.e.Scene.setPosition(g.base, g.start.Add(delta))
	for i, o := range g.stacked {
		g.e.Scene.setPosition(o, g.stackedStart[i].Add(delta))
	}
	return nil
}

// End records the move. It returns a nil command when nothing changed.
func (g *MoveGesture) End() (Command, error) {
	if g.done {
		return nil, ErrGestureFinished
	}
	final := g.base.Position()
	finalStacked := make([]math.Vec3, len(g.stacked))
	for i, o := range g.stacked {
		finalStacked[i] = o.Position()
	}
	g.finish()
	if final == g.start {
		return nil, nil
	}

	var cmd Command
	var err error
	if len(g.stacked) == 0 {
		cmd, err = NewSelectObjectCommand(g.e.Scene, g.base, g.start, final)
	} else {
		cmd, err = NewSelectGroupCommand(g.e.Scene,
			append([]*Box{g.base}, g.stacked...),
			append([]math.Vec3{g.start}, g.stackedStart...),
			append([]math.Vec3{final}, finalStacked...))
	}
	if err != nil {
		return nil, err
	}
	return g.e.execute(cmd), nil
}

// Cancel puts every moved box back.
func (g *MoveGesture) Cancel() {
	if !g.done {
		g.finish()
	}
}

func (g *MoveGesture) finish() {
	for i := len(g.stacked) - 1; i >= 0; i-- {
		g.e.Scene.setPosition(g.stacked[i], g.stackedStart[i])
	}
	g.e.Scene.setPosition(g.base, g.start)
	setControlled(g.stacked, false)
	g.done = true
	g.e.end(g)
}

func boxStates(boxes []*Box) []BoxState {
	out := make([]BoxState, len(boxes))
	for i, b := range boxes {
		out[i] = b.State()
	}
	return out
}

func setControlled(boxes []*Box, on bool) {
	for _, b := range boxes {
		b.controlled = on
	}
}

func component(v math.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func withComponent(d core.Dimensions, axis int, v float32) core.Dimensions {
	switch axis {
	case 0:
		d.Width = v
	case 1:
		d.Height = v
	default:
		d.Depth = v
	}
	return d
}
