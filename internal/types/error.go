package types

import "fmt"

// ErrorKind classifies a domain error for HTTP translation.
type ErrorKind string

const (
	// KindValidation is a business-rule violation, recoverable by the caller.
	KindValidation ErrorKind = "validation"
	// KindCapacity means a property has no free units left.
	KindCapacity ErrorKind = "capacity"
	// KindNotFound means a referenced record does not exist.
	KindNotFound ErrorKind = "not_found"
	// KindConflict means the operation contradicts existing relationships,
	// e.g. a property already assigned to another lease manager.
	KindConflict ErrorKind = "conflict"
)

// DomainError is the error type raised by the service layer. Handlers never
// catch these; the fiber error handler translates them at the edge.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError creates a validation DomainError.
func NewValidationError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewCapacityError creates a capacity DomainError.
func NewCapacityError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindCapacity, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a not-found DomainError.
func NewNotFoundError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError creates a conflict DomainError.
func NewConflictError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// CustomError carries an explicit HTTP status code. Used by the auth
// middleware where the code is known at the point of failure.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
