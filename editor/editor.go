package editor

import (
	"fmt"
	"log/slog"

	"box-editor/logger"
	"box-editor/scene"
)

const (
	DefaultMaxHistory    = 0 // unlimited
	DefaultInitialHeight = 0.02
	DefaultMinSize       = 0.1
)

// Options configure a new Editor.
type Options struct {
	MaxHistory    int // 0 = unlimited
	Stacking      StackingOptions
	InitialHeight float32 // height of a freshly drawn box
	MinSize       float32 // smallest footprint edge and extruded dimension
	PriceHook     PriceHook
}

func DefaultOptions() Options {
	return Options{
		MaxHistory:    DefaultMaxHistory,
		Stacking:      DefaultStackingOptions(),
		InitialHeight: DefaultInitialHeight,
		MinSize:       DefaultMinSize,
	}
}

// gesture is an edit in progress that ends in at most one command.
type gesture interface {
	Cancel()
}

// Editor is the top-level editor state: the scene, its history and the
// gesture in progress. Input handling lives outside; it calls the gesture
// methods and Undo/Redo.
type Editor struct {
	Scene     *Scene
	History   *History
	Selection *Selection
	Textures  *scene.TextureLoader

	opts    Options
	gesture gesture
	log     *slog.Logger

	// Status info
	StatusText string
}

// NewEditor initializes a new editor instance. textures may be nil when no
// catalog is configured; texture gestures then fail.
func NewEditor(opts Options, textures *scene.TextureLoader) *Editor {
	d := DefaultOptions()
	if opts.InitialHeight <= 0 {
		opts.InitialHeight = d.InitialHeight
	}
	if opts.MinSize <= 0 {
		opts.MinSize = d.MinSize
	}
	s := NewScene(opts.Stacking, NewLedger(opts.PriceHook))
	return &Editor{
		Scene:      s,
		History:    NewHistory(opts.MaxHistory),
		Selection:  NewSelection(s),
		Textures:   textures,
		opts:       opts,
		log:        logger.With("editor"),
		StatusText: "Ready",
	}
}

func (e *Editor) Options() Options { return e.opts }

// Price returns the running total of everything in the scene.
func (e *Editor) Price() float64 { return e.Scene.Ledger().Total() }

// Busy reports whether a gesture is in progress.
func (e *Editor) Busy() bool { return e.gesture != nil }

// Undo reverts the last command. It is refused while a gesture is in
// progress, since the live state is not yet recorded.
func (e *Editor) Undo() bool {
	if e.gesture != nil {
		e.log.Debug("undo refused during gesture")
		return false
	}
	if !e.History.Undo() {
		return false
	}
	e.StatusText = "Undo"
	return true
}

// Redo reapplies the last undone command.
func (e *Editor) Redo() bool {
	if e.gesture != nil {
		e.log.Debug("redo refused during gesture")
		return false
	}
	if !e.History.Redo() {
		return false
	}
	e.StatusText = "Redo"
	return true
}

// CancelGesture aborts the gesture in progress, if any.
func (e *Editor) CancelGesture() {
	if e.gesture != nil {
		e.gesture.Cancel()
	}
}

func (e *Editor) execute(cmd Command) Command {
	if e.History.Execute(cmd) {
		e.StatusText = cmd.Description()
	}
	return cmd
}

func (e *Editor) begin(g gesture) error {
	if e.gesture != nil {
		return ErrGestureActive
	}
	e.gesture = g
	return nil
}

func (e *Editor) end(g gesture) {
	if e.gesture == g {
		e.gesture = nil
	}
}

// checkEditable rejects boxes a gesture may not start on.
func (e *Editor) checkEditable(b *Box) error {
	if b == nil {
		return ErrNilObject
	}
	if !e.Scene.Contains(b) {
		return fmt.Errorf("%v: %w", b, ErrNotInScene)
	}
	if b.controlled {
		return fmt.Errorf("%v: %w", b, ErrStackControlled)
	}
	return nil
}

// GetStats returns scene statistics for the status bar
func (e *Editor) GetStats() (objectCount, undoCount, redoCount int) {
	return e.Scene.Len(), e.History.UndoLen(), e.History.RedoLen()
}
