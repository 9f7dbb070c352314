// Package errors defines the structured error types used across regen.
//
// Enumeration and dependency resolution are total functions and never
// produce errors; the types here cover the surfaces that can actually fail:
// configuration loading, file I/O during hashing, and delegated hash
// invocations.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Type represents different categories of errors.
type Type string

const (
	TypeConfig   Type = "config"
	TypeIO       Type = "io"
	TypeHash     Type = "hash"
	TypeInternal Type = "internal"
)

// Error is a structured error with a category and optional path context.
type Error struct {
	Type    Type
	Code    string
	Message string
	Path    string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	parts = append(parts, e.Message)
	msg := strings.Join(parts, " ")
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a structured error without a cause.
func New(t Type, code, message string) *Error {
	return &Error{Type: t, Code: code, Message: message}
}

// Wrap wraps an error with a category and message. Returns nil for a nil
// cause so call sites can wrap unconditionally.
func Wrap(err error, t Type, code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Type: t, Code: code, Message: message, Cause: err}
}

// WithPath attaches path context to the error.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// IsType reports whether err is (or wraps) a structured error of the given
// category.
func IsType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// DelegationError reports a failed delegated hash invocation: the external
// hashing command exited non-zero, produced no output, or could not be run
// at all. It always carries the path that was being hashed.
type DelegationError struct {
	// Path is the file the delegated command was asked to hash.
	Path string
	// Output holds the command's combined output, trimmed; may be empty.
	Output string
	// Cause is the underlying exec error, if any.
	Cause error
}

// Error implements the error interface.
func (e *DelegationError) Error() string {
	msg := fmt.Sprintf("delegated hashing failed for %s", e.Path)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Output != "" {
		msg += fmt.Sprintf(" (output: %s)", e.Output)
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *DelegationError) Unwrap() error {
	return e.Cause
}
