package editor

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"box-editor/logger"
)

// EventKind says which History operation produced an Event.
type EventKind int

const (
	EventExecuted EventKind = iota
	EventUndone
	EventRedone
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventExecuted:
		return "executed"
	case EventUndone:
		return "undone"
	case EventRedone:
		return "redone"
	default:
		return "cleared"
	}
}

// Event is delivered to listeners after every change of the stacks.
// EntryID stays the same for a command across undo and redo.
type Event struct {
	Kind        EventKind
	EntryID     uuid.UUID
	Description string
	UndoLen     int
	RedoLen     int
}

// Listener observes History; menus use it to enable undo/redo items.
type Listener func(Event)

type entry struct {
	id  uuid.UUID
	cmd Command
}

type listenerSlot struct {
	id int
	fn Listener
}

// History manages the undo/redo stacks of one editing session.
// It holds no scene data; it only orders and replays commands.
// History is not safe for concurrent use: like the scene it mutates, it
// belongs to the goroutine handling input.
type History struct {
	undoStack []entry
	redoStack []entry
	maxDepth  int // 0 means unlimited

	listeners    []listenerSlot
	nextListener int
	log          *slog.Logger
}

// NewHistory creates a history keeping at most maxDepth undo entries.
// Zero or negative means no limit.
func NewHistory(maxDepth int) *History {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &History{
		maxDepth: maxDepth,
		log:      logger.With("history"),
	}
}

// Execute runs cmd, pushes it to the undo stack and clears the redo stack.
// A nil command is logged and ignored, leaving both stacks untouched.
func (h *History) Execute(cmd Command) bool {
	if isNil(cmd) {
		h.log.Warn("rejected nil command")
		return false
	}
	h.notify(h.execute(cmd))
	return true
}

func (h *History) execute(cmd Command) Event {
	cmd.Execute()
	e := entry{id: uuid.New(), cmd: cmd}
	h.undoStack = append(h.undoStack, e)
	if h.maxDepth > 0 && len(h.undoStack) > h.maxDepth {
		h.undoStack = slices.Delete(h.undoStack, 0, len(h.undoStack)-h.maxDepth)
	}
	// A new action invalidates the undone future
	clear(h.redoStack)
	h.redoStack = h.redoStack[:0]

	h.log.Debug("executed", "command", cmd.Description(), "undo", len(h.undoStack))
	return h.event(EventExecuted, e)
}

// Undo reverts the most recent command. It reports false when there is
// nothing to undo.
func (h *History) Undo() bool {
	ev, ok := h.undo()
	if ok {
		h.notify(ev)
	}
	return ok
}

func (h *History) undo() (Event, bool) {
	if len(h.undoStack) == 0 {
		h.log.Debug("nothing to undo")
		return Event{}, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	e.cmd.Undo()
	h.redoStack = append(h.redoStack, e)

	h.log.Debug("undone", "command", e.cmd.Description(), "redo", len(h.redoStack))
	return h.event(EventUndone, e), true
}

// Redo reapplies the most recently undone command. It reports false when
// there is nothing to redo.
func (h *History) Redo() bool {
	ev, ok := h.redo()
	if ok {
		h.notify(ev)
	}
	return ok
}

func (h *History) redo() (Event, bool) {
	if len(h.redoStack) == 0 {
		h.log.Debug("nothing to redo")
		return Event{}, false
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	e.cmd.Execute()
	h.undoStack = append(h.undoStack, e)

	h.log.Debug("redone", "command", e.cmd.Description(), "undo", len(h.undoStack))
	return h.event(EventRedone, e), true
}

// Clear wipes all undo/redo history without touching the scene.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.notify(h.event(EventCleared, entry{}))
}

func (h *History) UndoLen() int {
	return len(h.undoStack)
}

func (h *History) RedoLen() int {
	return len(h.redoStack)
}

func (h *History) CanUndo() bool { return h.UndoLen() > 0 }
func (h *History) CanRedo() bool { return h.RedoLen() > 0 }

// UndoDescription names the command Undo would revert, for menu labels.
func (h *History) UndoDescription() string {
	if len(h.undoStack) == 0 {
		return ""
	}
	return h.undoStack[len(h.undoStack)-1].cmd.Description()
}

// RedoDescription names the command Redo would reapply.
func (h *History) RedoDescription() string {
	if len(h.redoStack) == 0 {
		return ""
	}
	return h.redoStack[len(h.redoStack)-1].cmd.Description()
}

// Subscribe registers l for events and returns a func removing it.
func (h *History) Subscribe(l Listener) (unsubscribe func()) {
	h.nextListener++
	id := h.nextListener
	h.listeners = append(h.listeners, listenerSlot{id: id, fn: l})
	return func() {
		h.listeners = slices.DeleteFunc(h.listeners, func(s listenerSlot) bool { return s.id == id })
	}
}

func (h *History) event(kind EventKind, e entry) Event {
	ev := Event{
		Kind:    kind,
		EntryID: e.id,
		UndoLen: len(h.undoStack),
		RedoLen: len(h.redoStack),
	}
	if e.cmd != nil {
		ev.Description = e.cmd.Description()
	}
	return ev
}

// notify runs after the stacks are settled so listeners may query History.
func (h *History) notify(ev Event) {
	for _, l := range slices.Clone(h.listeners) {
		l.fn(ev)
	}
}
