// Package errors provides domain-specific error types for spu-md5.
//
// Every failure surfaced by the digest core, the configuration layer, the
// self-check suite and the HTTP service carries an ErrorCode so callers can
// branch on the category with errors.Is instead of matching message text.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeUsage indicates the caller misused an API, e.g. writing to a finalized digest.
	ErrCodeUsage ErrorCode = "USAGE_ERROR"

	// ErrCodeUnsupportedInput indicates an input value that cannot be viewed as bytes.
	ErrCodeUnsupportedInput ErrorCode = "UNSUPPORTED_INPUT"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeIO indicates a read or decode failure on caller-supplied data.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodeMismatch indicates a computed digest did not match the expected value.
	ErrCodeMismatch ErrorCode = "MISMATCH_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewUsageError creates a new API misuse error.
func NewUsageError(message string) *Error {
	return New(ErrCodeUsage, message)
}

// NewUnsupportedInputError creates an error for a value of type v that is not byte-like.
func NewUnsupportedInputError(v any) *Error {
	return New(ErrCodeUnsupportedInput, fmt.Sprintf("unsupported input type %T", v))
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewIOError creates a new read/decode error.
func NewIOError(message string, cause error) *Error {
	return Wrap(ErrCodeIO, message, cause)
}

// NewMismatchError creates an error reporting an unexpected digest.
func NewMismatchError(name, expected, got string) *Error {
	return New(ErrCodeMismatch, fmt.Sprintf("%s: expected %s, got %s", name, expected, got))
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}

// GetCode extracts the error code from an error, returning ErrCodeInternal if not a domain error.
func GetCode(err error) ErrorCode {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrCodeInternal
}
