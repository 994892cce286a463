package shared

import "fmt"

// Error codes shared by all bounded contexts
const (
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInvalidState = "INVALID_STATE"
	CodeInvalidInput = "INVALID_INPUT"
	CodeConflict     = "CONFLICT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so callers can use
// errors.Is(err, shared.ErrNotFound) regardless of the message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError(CodeNotFound, "Resource not found")
	ErrForbidden    = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrInvalidState = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInvalidInput = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConflict     = NewDomainError(CodeConflict, "Resource conflicts with existing data")
)

// NewNotFound returns a NOT_FOUND error naming the missing entity
func NewNotFound(entity string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", entity))
}

// NewForbidden returns a FORBIDDEN error
func NewForbidden(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// NewInvalidState returns an INVALID_STATE error
func NewInvalidState(message string) *DomainError {
	return NewDomainError(CodeInvalidState, message)
}

// NewInvalidInput returns an INVALID_INPUT error
func NewInvalidInput(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}

// NewConflict returns a CONFLICT error
func NewConflict(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}
