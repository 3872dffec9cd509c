package oidc

import (
	"errors"
	"fmt"
)

// ErrorCategory categorizes errors for handling and reporting.
type ErrorCategory string

const (
	// ErrCategoryValidation indicates invalid input or configuration.
	ErrCategoryValidation ErrorCategory = "validation"
	// ErrCategoryNotFound indicates a resource was not found.
	ErrCategoryNotFound ErrorCategory = "not_found"
	// ErrCategoryInternal indicates an internal error.
	ErrCategoryInternal ErrorCategory = "internal"
)

// Error is a structured error with category and context.
type Error struct {
	// Category classifies the error type.
	Category ErrorCategory

	// Message is a human-readable error message.
	Message string

	// Construct is the construct path where the error occurred, when known.
	Construct string

	// Operation is the operation that failed.
	Operation string

	// Cause is the underlying error.
	Cause error

	// Details contains additional error context.
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Category, e.Message)
	if e.Construct != "" {
		msg = fmt.Sprintf("[%s:%s] %s", e.Construct, e.Category, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error's category.
func (e *Error) Is(target error) bool {
	var oe *Error
	if errors.As(target, &oe) {
		return e.Category == oe.Category
	}
	return false
}

// NewError creates a new Error.
func NewError(category ErrorCategory, message string) *Error {
	return &Error{
		Category: category,
		Message:  message,
		Details:  make(map[string]interface{}),
	}
}

// WithConstruct sets the construct path.
func (e *Error) WithConstruct(path string) *Error {
	e.Construct = path
	return e
}

// WithOperation sets the operation.
func (e *Error) WithOperation(op string) *Error {
	e.Operation = op
	return e
}

// WithCause sets the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetail adds a detail to the error.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.Details[key] = value
	return e
}

// Convenience constructors for common error types

// ErrValidation creates a validation error.
func ErrValidation(message string) *Error {
	return NewError(ErrCategoryValidation, message)
}

// ErrNotFound creates a not found error.
func ErrNotFound(resourceType, resourceID string) *Error {
	return NewError(ErrCategoryNotFound, fmt.Sprintf("%s not found: %s", resourceType, resourceID)).
		WithDetail("resource_type", resourceType).
		WithDetail("resource_id", resourceID)
}

// ErrInternal creates an internal error.
func ErrInternal(message string) *Error {
	return NewError(ErrCategoryInternal, message)
}

// IsCategory checks if an error is of a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Category == category
	}
	return false
}

// ScopeError is a validation failure raised independent of any construct
// scope. It is the one error kind produced by detached stand-ins: any access
// to tree- or environment-dependent attributes of an object that never
// joined a construct tree fails with a ScopeError whose message names the
// legacy API that produced the object.
//
// ScopeErrors are never recovered internally. Accessors that must satisfy a
// framework interface shape panic with the typed value; callers are expected
// to stop using the object once one is observed.
type ScopeError struct {
	// Message is the full diagnostic, including the originating API name
	// when the producing factory supplied one.
	Message string
}

// NewScopeError creates a ScopeError with the given message.
func NewScopeError(message string) *ScopeError {
	return &ScopeError{Message: message}
}

// Error implements the error interface.
func (e *ScopeError) Error() string {
	return e.Message
}

// IsScopeError checks if an error is a ScopeError.
func IsScopeError(err error) bool {
	var se *ScopeError
	return errors.As(err, &se)
}
