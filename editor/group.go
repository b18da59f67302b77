package editor

import (
	"fmt"
	"slices"

	"box-editor/math"
)

// Group commands apply their members in recorded order and undo them in
// strict reverse order: a later member may have been placed relative to an
// earlier one, e.g. a stacked box above the base it rests on.

// GroupTransformCommand records transform changes of several boxes as one step
type GroupTransformCommand struct {
	Scene     *Scene
	Boxes     []*Box
	OldStates []BoxState
	NewStates []BoxState
	desc      string
}

// NewGroupTransformCommand copies its inputs, so later changes to the slices or
// to the stacking relationships do not alter the membership.
func NewGroupTransformCommand(s *Scene, boxes []*Box, oldStates, newStates []BoxState) (*GroupTransformCommand, error) {
	if err := checkMembers(s, boxes, len(oldStates), len(newStates)); err != nil {
		return nil, err
	}
	return &GroupTransformCommand{
		Scene:     s,
		Boxes:     slices.Clone(boxes),
		OldStates: slices.Clone(oldStates),
		NewStates: slices.Clone(newStates),
		desc:      groupDescription("Transform", boxes),
	}, nil
}

func (c *GroupTransformCommand) Execute() {
	for i, b := range c.Boxes {
		c.Scene.setState(b, c.NewStates[i])
	}
}

func (c *GroupTransformCommand) Undo() {
	for i := len(c.Boxes) - 1; i >= 0; i-- {
		c.Scene.setState(c.Boxes[i], c.OldStates[i])
	}
}

func (c *GroupTransformCommand) Description() string { return c.desc }

// SelectGroupCommand records a move of several boxes as one step
type SelectGroupCommand struct {
	Scene        *Scene
	Boxes        []*Box
	OldPositions []math.Vec3
	NewPositions []math.Vec3
	desc         string
}

func NewSelectGroupCommand(s *Scene, boxes []*Box, oldPositions, newPositions []math.Vec3) (*SelectGroupCommand, error) {
	if err := checkMembers(s, boxes, len(oldPositions), len(newPositions)); err != nil {
		return nil, err
	}
	return &SelectGroupCommand{
		Scene:        s,
		Boxes:        slices.Clone(boxes),
		OldPositions: slices.Clone(oldPositions),
		NewPositions: slices.Clone(newPositions),
		desc:         groupDescription("Move", boxes),
	}, nil
}

func (c *SelectGroupCommand) Execute() {
	for i, b := range c.Boxes {
		c.Scene.setPosition(b, c.NewPositions[i])
	}
}

func (c *SelectGroupCommand) Undo() {
	for i := len(c.Boxes) - 1; i >= 0; i-- {
		c.Scene.setPosition(c.Boxes[i], c.OldPositions[i])
	}
}

func (c *SelectGroupCommand) Description() string { return c.desc }

// GroupTextureCommand composes texture-family commands, e.g. one per face
type GroupTextureCommand struct {
	Commands []Command
	desc     string
}

func NewGroupTextureCommand(cmds []Command) (*GroupTextureCommand, error) {
	if len(cmds) == 0 {
		return nil, fmt.Errorf("empty texture group: %w", ErrGroupMismatch)
	}
	for i, cmd := range cmds {
		if isNil(cmd) {
			return nil, fmt.Errorf("member %d: %w", i, ErrNilObject)
		}
		if _, ok := cmd.(textureCommand); !ok {
			return nil, fmt.Errorf("member %d (%T): %w", i, cmd, ErrNotTextureCommand)
		}
	}
	return &GroupTextureCommand{
		Commands: slices.Clone(cmds),
		desc:     fmt.Sprintf("Texture %d faces", len(cmds)),
	}, nil
}

func (c *GroupTextureCommand) Execute()            { executeAll(c.Commands) }
func (c *GroupTextureCommand) Undo()               { undoAll(c.Commands) }
func (c *GroupTextureCommand) Description() string { return c.desc }

// Batch is a general composite for gestures that combine command kinds.
type Batch struct {
	Commands []Command
	desc     string
}

func NewBatch(desc string, cmds ...Command) (*Batch, error) {
	for i, cmd := range cmds {
		if isNil(cmd) {
			return nil, fmt.Errorf("batch member %d: %w", i, ErrNilObject)
		}
	}
	return &Batch{Commands: slices.Clone(cmds), desc: desc}, nil
}

func (c *Batch) Execute()            { executeAll(c.Commands) }
func (c *Batch) Undo()               { undoAll(c.Commands) }
func (c *Batch) Description() string { return c.desc }

func executeAll(cmds []Command) {
	for _, cmd := range cmds {
		cmd.Execute()
	}
}

func undoAll(cmds []Command) {
	for i := len(cmds) - 1; i >= 0; i-- {
		cmds[i].Undo()
	}
}

func checkMembers(s *Scene, boxes []*Box, oldLen, newLen int) error {
	if s == nil {
		return ErrNilObject
	}
	if len(boxes) != oldLen || len(boxes) != newLen {
		return fmt.Errorf("%d boxes, %d old, %d new: %w", len(boxes), oldLen, newLen, ErrGroupMismatch)
	}
	for i, b := range boxes {
		if b == nil {
			return fmt.Errorf("member %d: %w", i, ErrNilObject)
		}
	}
	return nil
}

func groupDescription(verb string, boxes []*Box) string {
	switch len(boxes) {
	case 0:
		return verb + " nothing"
	case 1:
		return verb + " " + boxes[0].name
	default:
		return fmt.Sprintf("%s %s and %d stacked", verb, boxes[0].name, len(boxes)-1)
	}
}
