package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryDecode   Category = "decode"
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
)

// QueryError is a structured error with a code, the affected field and an
// optional fix suggestion.
type QueryError struct {
	// Code is a unique error identifier (e.g., "Q001").
	Code string

	// Category is the error type (decode, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Field is the query field the error refers to, if any.
	Field string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Field)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *QueryError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a QueryError with the same code.
func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithField records the query field the error refers to.
func (e *QueryError) WithField(name string) *QueryError {
	e.Field = name
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *QueryError) WithSuggestion(s string) *QueryError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *QueryError) WithDetail(d string) *QueryError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *QueryError) Wrap(err error) *QueryError {
	e.Wrapped = err
	return e
}

// New creates a QueryError from a registered error code.
func New(code string) *QueryError {
	template, ok := registry[code]
	if !ok {
		return &QueryError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &QueryError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new QueryError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *QueryError {
	return &QueryError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a QueryError.
func FromError(err error, code string) *QueryError {
	if err == nil {
		return nil
	}
	if qe, ok := err.(*QueryError); ok {
		return qe
	}
	return New(code).Wrap(err)
}
