package errors

import (
	stderrors "errors"
	"fmt"
)

// EngineError is the interface implemented by all engine-level errors.
type EngineError interface {
	error          // Embed the standard error interface
	Kind() string  // e.g., "Type", "Unsupported"
	// Message returns the specific error message without the kind prefix.
	// This might be useful if the caller wants to format the error differently.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// --- Concrete Error Types ---

// TypeError represents a failure that surfaces to script as a TypeError:
// a non-object fed to the descriptor conversion, a descriptor mixing data
// and accessor facets, or a getter/setter that is neither undefined nor
// callable.
type TypeError struct {
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("TypeError: %s", e.Msg)
}
func (e *TypeError) Kind() string    { return "Type" }
func (e *TypeError) Message() string { return e.Msg }
func (e *TypeError) Unwrap() error   { return e.Cause }
func (e *TypeError) CausedBy(cause error) *TypeError {
	e.Cause = cause
	return e
}

// NewTypeError builds a TypeError with a formatted message.
func NewTypeError(format string, args ...interface{}) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// UnsupportedOperationError represents a write routed through a value
// strategy that has no store behavior, notably any attempted mutation of
// the absent-property sentinel. Well-formed script never triggers it; if
// observed it indicates an engine defect.
type UnsupportedOperationError struct {
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("Unsupported Operation: %s", e.Msg)
}
func (e *UnsupportedOperationError) Kind() string    { return "Unsupported" }
func (e *UnsupportedOperationError) Message() string { return e.Msg }
func (e *UnsupportedOperationError) Unwrap() error   { return e.Cause }
func (e *UnsupportedOperationError) CausedBy(cause error) *UnsupportedOperationError {
	e.Cause = cause
	return e
}

// NewUnsupportedOperationError builds an UnsupportedOperationError with a
// formatted message.
func NewUnsupportedOperationError(format string, args ...interface{}) *UnsupportedOperationError {
	return &UnsupportedOperationError{Msg: fmt.Sprintf(format, args...)}
}

// IsTypeError reports whether err is (or wraps) a TypeError.
func IsTypeError(err error) bool {
	var te *TypeError
	return stderrors.As(err, &te)
}

// IsUnsupportedOperation reports whether err is (or wraps) an
// UnsupportedOperationError.
func IsUnsupportedOperation(err error) bool {
	var ue *UnsupportedOperationError
	return stderrors.As(err, &ue)
}
