package rcstore

import (
	"errors"
	"fmt"
)

// Code identifies the shape of a fatal resolution failure.
type Code string

const (
	// CodeFiWithoutIf is a %{} terminator with no open conditional.
	CodeFiWithoutIf Code = "FI_WITHOUT_IF"

	// CodeElseWithoutIf is a %{else} with no open conditional.
	CodeElseWithoutIf Code = "ELSE_WITHOUT_IF"

	// CodeIfWithoutFi is a conditional whose %{} terminator is
	// missing.
	CodeIfWithoutFi Code = "IF_WITHOUT_FI"

	// CodeDoubleElse is a second %{else} at the same nesting depth.
	CodeDoubleElse Code = "DOUBLE_ELSE"

	// CodeSelfReference is a key that depends on itself, directly or
	// through indirection, along the active recursion path.
	CodeSelfReference Code = "SELF_REFERENCE"

	// CodeDuplicateKey is a default registered twice.
	CodeDuplicateKey Code = "DUPLICATE_KEY"
)

// ResolveError is a fatal configuration failure. Resolution has no
// recovery path: a broken configuration makes the rest of the program
// unsafe to run, so the caller is expected to terminate after reporting
// it.
type ResolveError struct {
	// Code is the failure shape for programmatic handling.
	Code Code `json:"code"`

	// Key is the configuration key being resolved when the failure
	// was detected.
	Key string `json:"key"`

	// Message is the human-readable reason.
	Message string `json:"message"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("[%s] %s in delayed substitution of %s", e.Code, e.Message, e.Key)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Is matches errors by code, and by key when the target names one.
func (e *ResolveError) Is(target error) bool {
	t, ok := target.(*ResolveError)
	if !ok {
		return false
	}
	if t.Key != "" && t.Key != e.Key {
		return false
	}
	return e.Code == t.Code
}

func newResolveError(code Code, key, message string) *ResolveError {
	return &ResolveError{Code: code, Key: key, Message: message}
}

// AsResolveError unwraps err to a *ResolveError, if there is one.
func AsResolveError(err error) (*ResolveError, bool) {
	var e *ResolveError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsSelfReference reports whether err is a cycle failure.
func IsSelfReference(err error) bool {
	e, ok := AsResolveError(err)
	return ok && e.Code == CodeSelfReference
}

// IsMalformedConditional reports whether err is one of the conditional
// structure failures.
func IsMalformedConditional(err error) bool {
	e, ok := AsResolveError(err)
	if !ok {
		return false
	}
	switch e.Code {
	case CodeFiWithoutIf, CodeElseWithoutIf, CodeIfWithoutFi, CodeDoubleElse:
		return true
	}
	return false
}
