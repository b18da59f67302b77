package editor

import (
	"slices"

	"box-editor/math"
)

// Selection tracks the selected boxes and the face picked for texturing.
// It watches the scene and drops boxes that get removed, including removals
// caused by undo.
type Selection struct {
	Objects []*Box

	// Active object (last selected, shown in properties)
	ActiveObject *Box
	ActiveFace   Face

	stop func()
}

// NewSelection creates an empty selection following s.
func NewSelection(s *Scene) *Selection {
	sel := &Selection{ActiveFace: -1}
	if s != nil {
		sel.stop = s.Watch(sel.onChange)
	}
	return sel
}

func (s *Selection) onChange(c Change) {
	if c.Kind == ChangeRemoved {
		s.Remove(c.Box)
	}
}

// Close stops following the scene.
func (s *Selection) Close() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// Clear removes all selections
func (s *Selection) Clear() {
	s.Objects = s.Objects[:0]
	s.ActiveObject = nil
	s.ActiveFace = -1
}

// SelectSingle selects a single box, clearing the previous selection
func (s *Selection) SelectSingle(b *Box) {
	s.Objects = []*Box{b}
	s.ActiveObject = b
	s.ActiveFace = -1
}

// SelectFace selects a box and one of its faces.
func (s *Selection) SelectFace(b *Box, f Face) {
	s.SelectSingle(b)
	s.ActiveFace = f
}

// ToggleObject adds/removes a box from the selection (Shift+Click)
func (s *Selection) ToggleObject(b *Box) {
	if s.IsSelected(b) {
		s.Remove(b)
		return
	}
	s.Objects = append(s.Objects, b)
	s.ActiveObject = b
	s.ActiveFace = -1
}

// Remove drops b from the selection if present.
func (s *Selection) Remove(b *Box) {
	i := slices.Index(s.Objects, b)
	if i < 0 {
		return
	}
	s.Objects = slices.Delete(s.Objects, i, i+1)
	if s.ActiveObject == b {
		s.ActiveFace = -1
		if len(s.Objects) > 0 {
			s.ActiveObject = s.Objects[len(s.Objects)-1]
		} else {
			s.ActiveObject = nil
		}
	}
}

func (s *Selection) IsSelected(b *Box) bool {
	return slices.Contains(s.Objects, b)
}

// GetSelectionCenter returns the center position of all selected boxes
func (s *Selection) GetSelectionCenter() math.Vec3 {
	if len(s.Objects) == 0 {
		return math.Vec3Zero
	}
	center := math.Vec3Zero
	for _, obj := range s.Objects {
		center = center.Add(obj.Position())
	}
	return center.Mul(1 / float32(len(s.Objects)))
}

func (s *Selection) HasSelection() bool {
	return len(s.Objects) > 0
}
