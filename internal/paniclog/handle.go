// Package paniclog provides a handler for panicking code
// that logs the panic to an io.Writer.
package paniclog

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Error is a recovered panic.
//
// If the panic value was an error, errors.Is and errors.As see through
// to it.
type Error struct {
	Value any    // value passed to panic
	Stack []byte // stack trace where the panic was recovered
}

func (e *Error) Error() string {
	switch v := e.Value.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("panic: %v", v)
	}
}

func (e *Error) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Handle handles a panic value, logging it and its stack trace to the
// given io.Writer. Returns the panic as an *Error, or nil if pval is nil.
func Handle(pval any, w io.Writer) error {
	if pval == nil {
		return nil
	}

	stack := debug.Stack()
	fmt.Fprintf(w, "panic: %v\n%s", pval, stack)
	return &Error{Value: pval, Stack: stack}
}

// Recover recovers a panic and stores it into the given error pointer,
// replacing any error already there.
//
//	defer paniclog.Recover(&err, stderr)
func Recover(err *error, w io.Writer) {
	if pval := recover(); pval != nil {
		*err = Handle(pval, w)
	}
}
