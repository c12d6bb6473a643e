package models

import "errors"

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// ErrorKind classifies every error an operation can surface
type ErrorKind int

// The four error kinds used across the API
const (
	ValidationError ErrorKind = iota + 1
	NotFoundError
	PersistenceError
	InternalError
)

// AppError is the error type returned by the databases layer and the
// workflow code. It carries one of the four kinds so handlers can map it to
// an HTTP status without string matching.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewValidationError wraps a missing/malformed-input failure
func NewValidationError(message string, err error) *AppError {
	return &AppError{Kind: ValidationError, Message: message, Err: err}
}

// NewNotFoundError wraps a no-row-for-id failure
func NewNotFoundError(message string, err error) *AppError {
	return &AppError{Kind: NotFoundError, Message: message, Err: err}
}

// NewPersistenceError wraps a store read/write failure
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{Kind: PersistenceError, Message: message, Err: err}
}

// NewInternalError wraps any other unexpected failure
func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: InternalError, Message: message, Err: err}
}

// KindOf extracts the error kind from err, defaulting to InternalError for
// errors that did not come from this package.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return InternalError
}
