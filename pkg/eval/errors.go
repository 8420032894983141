// ABOUTME: Evaluator error types: positioned syntax errors and runtime sentinels
// ABOUTME: Runtime errors wrap a sentinel so callers can classify with errors.Is

package eval

import (
	"errors"
	"fmt"
)

// Runtime sentinels. Messages read naturally after the offending name.
var (
	ErrUndefined   = errors.New("is not defined")
	ErrNotCallable = errors.New("is not a function")
	ErrNilAccess   = errors.New("cannot read properties of null")
	ErrType        = errors.New("type error")
	ErrIndex       = errors.New("index out of range")
	ErrCyclic      = errors.New("converting circular structure to JSON")
	ErrUnsupported = errors.New("value cannot be serialized")
	ErrMarker      = errors.New("no output recorded")
)

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("SyntaxError: %s (at %d)", e.Msg, e.Pos)
}

func syntaxErr(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// PanicError wraps a panic recovered while evaluating.
type PanicError struct {
	Value any
}

// catch converts a panic into a *PanicError stored in err. It must be
// deferred directly.
func catch(err *error) {
	if r := recover(); r != nil {
		*err = &PanicError{Value: r}
	}
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}
