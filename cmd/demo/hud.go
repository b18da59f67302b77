package main

import (
	"fmt"
	"io"
	"strings"

	"box-editor/editor"
)

// StatusPanel stores the lines shown after every history change: the
// scene list with prices and the undo/redo state.
type StatusPanel struct {
	lines []string
}

func (sp *StatusPanel) AddLine(format string, args ...any) {
	sp.lines = append(sp.lines, fmt.Sprintf(format, args...))
}

func (sp *StatusPanel) Clear() {
	sp.lines = sp.lines[:0]
}

func (sp *StatusPanel) GetText() string {
	if len(sp.lines) == 0 {
		return ""
	}
	return strings.Join(sp.lines, "\n") + "\n"
}

// Refresh rebuilds the panel from the editor state.
func (sp *StatusPanel) Refresh(e *editor.Editor, ev editor.Event) {
	sp.Clear()
	sp.AddLine("[%s] %s", ev.Kind, ev.Description)
	for i, b := range e.Scene.Objects() {
		bounds := b.Bounds()
		sp.AddLine("  %d. %-10s size %.2fx%.2fx%.2f  y %.2f..%.2f  $%.2f", i+1, b.Name(),
			b.Size().X, b.Size().Y, b.Size().Z, bounds.Min.Y, bounds.Max.Y, b.Price())
	}
	objects, undo, redo := e.GetStats()
	sp.AddLine("  %d boxes  total $%.2f  undo %d  redo %d", objects, e.Price(), undo, redo)
}

func (sp *StatusPanel) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, sp.GetText())
	return int64(n), err
}
