// Package apperr classifies business errors so handlers can map them to
// HTTP responses without inspecting message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the failure category of an operation.
type Kind int

const (
	// KindNotFound means a referenced entity id did not resolve.
	KindNotFound Kind = iota + 1
	// KindInvalid means the input was malformed or semantically inconsistent.
	KindInvalid
	// KindConflict means a state precondition was violated (bed occupied,
	// duplicate team code, already assigned, ...).
	KindConflict
	// KindUnavailable means the underlying store could not be reached.
	KindUnavailable
)

// Error carries a Kind alongside a human-readable message. Every failure a
// service returns is exactly one Kind; nothing is retried internally.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Invalid builds a KindInvalid error.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unavailable wraps a store error.
func Unavailable(err error, format string, args ...any) *Error {
	return &Error{Kind: KindUnavailable, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the Kind of err, or 0 when err carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsNotFound(err error) bool    { return KindOf(err) == KindNotFound }
func IsInvalid(err error) bool     { return KindOf(err) == KindInvalid }
func IsConflict(err error) bool    { return KindOf(err) == KindConflict }
func IsUnavailable(err error) bool { return KindOf(err) == KindUnavailable }
