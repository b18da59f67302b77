package editor

import (
	"fmt"

	"box-editor/scene"
)

// textureCommand is implemented by the commands GroupTextureCommand accepts.
type textureCommand interface {
	Command
	face() Face
}

func checkFace(s *Scene, b *Box, f Face) error {
	if err := checkTarget(s, b); err != nil {
		return err
	}
	if !f.Valid() {
		return fmt.Errorf("%v: %w", f, ErrInvalidFace)
	}
	return nil
}

// TextureCommand swaps the material shown on one face
type TextureCommand struct {
	Scene       *Scene
	Box         *Box
	Face        Face
	OldMaterial *scene.Material
	NewMaterial *scene.Material
}

// NewTextureCommand captures the face's current material as the old state.
func NewTextureCommand(s *Scene, b *Box, f Face, m *scene.Material) (*TextureCommand, error) {
	if err := checkFace(s, b, f); err != nil {
		return nil, err
	}
	if m == nil {
		m = scene.DefaultMaterial()
	}
	return &TextureCommand{Scene: s, Box: b, Face: f, OldMaterial: b.surfaces[f].Material, NewMaterial: m}, nil
}

func (c *TextureCommand) Execute()   { c.Scene.setMaterial(c.Box, c.Face, c.NewMaterial) }
func (c *TextureCommand) Undo()      { c.Scene.setMaterial(c.Box, c.Face, c.OldMaterial) }
func (c *TextureCommand) face() Face { return c.Face }

func (c *TextureCommand) Description() string {
	return fmt.Sprintf("Apply %s to %s %s", c.NewMaterial.Name, c.Box.name, c.Face)
}

// RemoveTextureCommand resets one face to the default material
type RemoveTextureCommand struct {
	Scene       *Scene
	Box         *Box
	Face        Face
	OldMaterial *scene.Material
}

func NewRemoveTextureCommand(s *Scene, b *Box, f Face) (*RemoveTextureCommand, error) {
	if err := checkFace(s, b, f); err != nil {
		return nil, err
	}
	old := b.surfaces[f].Material
	if old.IsDefault() {
		return nil, fmt.Errorf("%v %v: %w", b, f, ErrNoTexture)
	}
	return &RemoveTextureCommand{Scene: s, Box: b, Face: f, OldMaterial: old}, nil
}

func (c *RemoveTextureCommand) Execute()   { c.Scene.setMaterial(c.Box, c.Face, scene.DefaultMaterial()) }
func (c *RemoveTextureCommand) Undo()      { c.Scene.setMaterial(c.Box, c.Face, c.OldMaterial) }
func (c *RemoveTextureCommand) face() Face { return c.Face }

func (c *RemoveTextureCommand) Description() string {
	return fmt.Sprintf("Remove texture from %s %s", c.Box.name, c.Face)
}

// RotateTextureCommand turns the texture on one face by quarter turns
type RotateTextureCommand struct {
	Scene    *Scene
	Box      *Box
	Face     Face
	OldTurns int
	NewTurns int
}

// NewRotateTextureCommand rotates the face's texture by delta quarter turns.
func NewRotateTextureCommand(s *Scene, b *Box, f Face, delta int) (*RotateTextureCommand, error) {
	if err := checkFace(s, b, f); err != nil {
		return nil, err
	}
	if b.surfaces[f].Material.IsDefault() {
		return nil, fmt.Errorf("%v %v: %w", b, f, ErrNoTexture)
	}
	old := b.surfaces[f].Turns
	next := ((old+delta)%4 + 4) % 4
	return &RotateTextureCommand{Scene: s, Box: b, Face: f, OldTurns: old, NewTurns: next}, nil
}

func (c *RotateTextureCommand) Execute()   { c.Scene.setTurns(c.Box, c.Face, c.NewTurns) }
func (c *RotateTextureCommand) Undo()      { c.Scene.setTurns(c.Box, c.Face, c.OldTurns) }
func (c *RotateTextureCommand) face() Face { return c.Face }

func (c *RotateTextureCommand) Description() string {
	return fmt.Sprintf("Rotate texture on %s %s", c.Box.name, c.Face)
}
