package tmpl

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrNotFound        = NewError("template not found")
	ErrReadTemplate    = NewError("failed to read template")
	ErrUnterminated    = NewError("unterminated interpolation")
	ErrUnbalanced      = NewError("unbalanced block")
	ErrUnmatchedCloser = NewError("unmatched closer")
	ErrAmbiguousArm    = NewError("ambiguous chained arm")
	ErrInvalidName     = NewError("invalid identifier")
)

// Position identifies a line in a template file.
type Position struct {
	File string
	Line int
}

// String returns "file:line", "line N", or "" depending on which fields are
// set.
func (p Position) String() string {
	switch {
	case p.File != "" && p.Line > 0:
		return p.File + ":" + strconv.Itoa(p.Line)

	case p.File != "":
		return p.File

	case p.Line > 0:
		return "line " + strconv.Itoa(p.Line)

	default:
		return ""
	}
}

// IsValid reports whether the position names a line.
func (p Position) IsValid() bool { return p.Line > 0 }

// Error represents an error with an optional template position and
// structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	pos   Position    // Offending template location
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<pos>: <msg>: <err>"
	//   2. "<msg>: <err>"
	//   3. "<msg>"
	//   4. "<err>"
	part := make([]string, 0, 3)

	if s := e.pos.String(); s != "" {
		part = append(part, s)
	}

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || t.pos.IsValid() {
		return false
	}

	return t.msg != "" && t.msg == e.msg
}

// Position returns the template position attached to the error, if any.
func (e *Error) Position() Position { return e.pos }

// Message returns the error message without position or cause.
func (e *Error) Message() string { return e.msg }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos.File != "" {
		attrs = append(attrs, slog.String("file", e.pos.File))
	}

	if e.pos.Line > 0 {
		attrs = append(attrs, slog.Int("line", e.pos.Line))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		pos:   e.pos,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		pos:   e.pos,
		attrs: newAttrs,
	}
}

// AtLine returns a copy of the error positioned at the given line.
func (e *Error) AtLine(line int) *Error {
	return e.At(Position{File: e.pos.File, Line: line})
}

// InFile returns a copy of the error attributed to the given file, keeping
// any line already set.
func (e *Error) InFile(file string) *Error {
	return e.At(Position{File: file, Line: e.pos.Line})
}

// At returns a copy of the error positioned at pos.
func (e *Error) At(pos Position) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		pos:   pos,
		attrs: e.attrs,
	}
}

// inFile attributes err to file when it is a positioned *Error.
func inFile(err error, file string) error {
	if file == "" {
		return err
	}

	var e *Error
	if errors.As(err, &e) {
		return e.InFile(file)
	}

	return err
}
