package editor

import "reflect"

// Command represents an undoable editor action.
//
// Execute applies the recorded "new" state and Undo the recorded "old" one.
// Each must be called exactly once per transition; calling Execute twice
// without an Undo in between is not supported.
type Command interface {
	Execute()
	Undo()
	Description() string
}

// UnimplementedCommand can be embedded by command types under construction.
// Its methods panic so that a command reaching History without real
// Execute/Undo methods is caught immediately.
type UnimplementedCommand struct{}

func (UnimplementedCommand) Execute()            { panic(ErrNotImplemented) }
func (UnimplementedCommand) Undo()               { panic(ErrNotImplemented) }
func (UnimplementedCommand) Description() string { return "unimplemented" }

// isNil catches both nil interfaces and typed nil pointers.
func isNil(cmd Command) bool {
	if cmd == nil {
		return true
	}
	v := reflect.ValueOf(cmd)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}
