package editor

import (
	"fmt"

	"box-editor/math"
)

func checkTarget(s *Scene, b *Box) error {
	if s == nil || b == nil {
		return ErrNilObject
	}
	return nil
}

// checkIndependent rejects boxes whose pose is currently derived from a
// gesture on the box beneath them.
func checkIndependent(s *Scene, b *Box) error {
	if err := checkTarget(s, b); err != nil {
		return err
	}
	if b.controlled {
		return fmt.Errorf("%v: %w", b, ErrStackControlled)
	}
	return nil
}

// AddObjectCommand records adding a box to the scene
type AddObjectCommand struct {
	Scene *Scene
	Box   *Box
}

func NewAddObjectCommand(s *Scene, b *Box) (*AddObjectCommand, error) {
	if err := checkTarget(s, b); err != nil {
		return nil, err
	}
	if !b.finite() {
		return nil, fmt.Errorf("%v: %w", b, ErrNotFinite)
	}
	return &AddObjectCommand{Scene: s, Box: b}, nil
}

func (c *AddObjectCommand) Execute()            { c.Scene.insertAt(c.Box, -1) }
func (c *AddObjectCommand) Undo()               { c.Scene.remove(c.Box) }
func (c *AddObjectCommand) Description() string { return "Add " + c.Box.name }

// DeleteObjectCommand records deleting a box. Boxes stacked on it settle
// onto whatever remains beneath them and are restored on undo.
type DeleteObjectCommand struct {
	Scene   *Scene
	Box     *Box
	Index   int
	Stacked []*Box
	Before  []BoxState
	After   []BoxState
}

// NewDeleteObjectCommand discovers the boxes resting on b and captures their
// current and settled states.
func NewDeleteObjectCommand(s *Scene, b *Box) (*DeleteObjectCommand, error) {
	if err := checkIndependent(s, b); err != nil {
		return nil, err
	}
	idx := s.IndexOf(b)
	if idx < 0 {
		return nil, fmt.Errorf("%v: %w", b, ErrNotInScene)
	}
	stacked := s.Stacking().Discover(b)
	drops := s.Stacking().Settle(b, stacked)
	c := &DeleteObjectCommand{
		Scene:   s,
		Box:     b,
		Index:   idx,
		Stacked: stacked,
		Before:  make([]BoxState, len(stacked)),
		After:   make([]BoxState, len(stacked)),
	}
	for i, o := range stacked {
		c.Before[i] = o.State()
		c.After[i] = c.Before[i]
		c.After[i].Position.Y -= drops[i]
	}
	return c, nil
}

func (c *DeleteObjectCommand) Execute() {
	c.Scene.remove(c.Box)
	for i, o := range c.Stacked {
		c.Scene.setState(o, c.After[i])
	}
}

func (c *DeleteObjectCommand) Undo() {
	c.Scene.insertAt(c.Box, c.Index)
	for i := len(c.Stacked) - 1; i >= 0; i-- {
		c.Scene.setState(c.Stacked[i], c.Before[i])
	}
}

func (c *DeleteObjectCommand) Description() string { return "Delete " + c.Box.name }

// TransformCommand records a change of dimensions, position and scale
type TransformCommand struct {
	Scene    *Scene
	Box      *Box
	OldState BoxState
	NewState BoxState
}

func NewTransformCommand(s *Scene, b *Box, oldState, newState BoxState) (*TransformCommand, error) {
	if err := checkIndependent(s, b); err != nil {
		return nil, err
	}
	return &TransformCommand{Scene: s, Box: b, OldState: oldState, NewState: newState}, nil
}

func (c *TransformCommand) Execute()            { c.Scene.setState(c.Box, c.NewState) }
func (c *TransformCommand) Undo()               { c.Scene.setState(c.Box, c.OldState) }
func (c *TransformCommand) Description() string { return "Transform " + c.Box.name }

// SelectObjectCommand records moving a box picked with the select tool
type SelectObjectCommand struct {
	Scene  *Scene
	Box    *Box
	OldPos math.Vec3
	NewPos math.Vec3
}

func NewSelectObjectCommand(s *Scene, b *Box, oldPos, newPos math.Vec3) (*SelectObjectCommand, error) {
	if err := checkIndependent(s, b); err != nil {
		return nil, err
	}
	return &SelectObjectCommand{Scene: s, Box: b, OldPos: oldPos, NewPos: newPos}, nil
}

func (c *SelectObjectCommand) Execute()            { c.Scene.setPosition(c.Box, c.NewPos) }
func (c *SelectObjectCommand) Undo()               { c.Scene.setPosition(c.Box, c.OldPos) }
func (c *SelectObjectCommand) Description() string { return "Move " + c.Box.name }

// RotationCommand records an orientation change
type RotationCommand struct {
	Scene  *Scene
	Box    *Box
	OldRot math.Quaternion
	NewRot math.Quaternion
}

func NewRotationCommand(s *Scene, b *Box, oldRot, newRot math.Quaternion) (*RotationCommand, error) {
	if err := checkIndependent(s, b); err != nil {
		return nil, err
	}
	return &RotationCommand{Scene: s, Box: b, OldRot: oldRot, NewRot: newRot}, nil
}

func (c *RotationCommand) Execute()            { c.Scene.setRotation(c.Box, c.NewRot) }
func (c *RotationCommand) Undo()               { c.Scene.setRotation(c.Box, c.OldRot) }
func (c *RotationCommand) Description() string { return "Rotate " + c.Box.name }
