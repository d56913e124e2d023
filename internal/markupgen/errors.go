package markupgen

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Error is a diagnostic with a source location and an optional hint.
type Error struct {
	Pos     Position
	Message string
	Hint    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Pos.String())
	sb.WriteString(": error: ")
	sb.WriteString(e.Message)
	if e.Hint != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Hint)
		sb.WriteString(")")
	}
	return sb.String()
}

// NewError creates a new Error with the given position and message.
func NewError(pos Position, message string) *Error {
	return &Error{Pos: pos, Message: message}
}

// NewErrorf creates a new Error with a formatted message.
func NewErrorf(pos Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ErrorList accumulates diagnostics. Passes append to it and keep going, so
// one run reports every independent problem.
type ErrorList struct {
	errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.errors = append(el.errors, err)
}

// AddError creates and adds an error with the given position and message.
func (el *ErrorList) AddError(pos Position, message string) {
	el.errors = append(el.errors, NewError(pos, message))
}

// AddErrorf creates and adds an error with a formatted message.
func (el *ErrorList) AddErrorf(pos Position, format string, args ...any) {
	el.errors = append(el.errors, NewErrorf(pos, format, args...))
}

// AddHint creates and adds an error carrying a hint.
func (el *ErrorList) AddHint(pos Position, message, hint string) {
	el.errors = append(el.errors, &Error{Pos: pos, Message: message, Hint: hint})
}

// Merge appends every error of other. A nil other is ignored.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	el.errors = append(el.errors, other.errors...)
}

// truncate drops errors added after the list had n entries. The parser uses
// it to discard diagnostics of an abandoned speculative parse.
func (el *ErrorList) truncate(n int) {
	if n < len(el.errors) {
		el.errors = el.errors[:n]
	}
}

// Sort orders errors by file, line and column. Errors at the same position
// keep their relative order.
func (el *ErrorList) Sort() {
	slices.SortStableFunc(el.errors, func(a, b *Error) int {
		return cmp.Or(
			cmp.Compare(a.Pos.File, b.Pos.File),
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
		)
	})
}

// Len returns the number of errors.
func (el *ErrorList) Len() int {
	if el == nil {
		return 0
	}
	return len(el.errors)
}

// HasErrors returns true if there are any errors.
func (el *ErrorList) HasErrors() bool {
	return el.Len() > 0
}

// Errors returns a copy of the error slice.
func (el *ErrorList) Errors() []*Error {
	if el == nil {
		return nil
	}
	return slices.Clone(el.errors)
}

// Error implements the error interface, returning all errors joined by newlines.
func (el *ErrorList) Error() string {
	var sb strings.Builder
	for i, err := range el.errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Err returns nil if there are no errors, otherwise returns the ErrorList as an error.
func (el *ErrorList) Err() error {
	if el.Len() == 0 {
		return nil
	}
	return el
}
