package editor

import "errors"

var (
	// ErrNotImplemented is the panic value of UnimplementedCommand.
	ErrNotImplemented = errors.New("command: not implemented")

	ErrNilObject         = errors.New("editor: nil object")
	ErrNotInScene        = errors.New("editor: object is not in the scene")
	ErrStackControlled   = errors.New("editor: object is controlled by a stack gesture")
	ErrGroupMismatch     = errors.New("editor: group member and state counts differ")
	ErrNotTextureCommand = errors.New("editor: not a texture command")
	ErrInvalidFace       = errors.New("editor: invalid face")
	ErrNoTexture         = errors.New("editor: face has no texture")
	ErrTooSmall          = errors.New("editor: box footprint below minimum size")
	ErrNotFinite         = errors.New("editor: box dimensions or transform not finite")
	ErrGestureActive     = errors.New("editor: another gesture is in progress")
	ErrGestureFinished   = errors.New("editor: gesture already finished")
)
