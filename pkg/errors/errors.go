package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Session errors
	ErrSessionClosed  ErrorCode = "SESSION_CLOSED"
	ErrSessionAlloc   ErrorCode = "SESSION_ALLOC"
	ErrResourceFile   ErrorCode = "RESOURCE_FILE"
	ErrSessionLogging ErrorCode = "SESSION_LOGGING"

	// Command errors
	ErrCommandParse ErrorCode = "COMMAND_PARSE"
	ErrLaunchFailed ErrorCode = "LAUNCH_FAILED"
	ErrNonZeroExit  ErrorCode = "NONZERO_EXIT"

	// Tool description errors
	ErrDescribeParse ErrorCode = "DESCRIBE_PARSE"
)

// GrassError represents a structured error with code and details
type GrassError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GrassError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GrassError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *GrassError) Is(target error) bool {
	var targetErr *GrassError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GrassError with the given code and message
func New(code ErrorCode, message string) *GrassError {
	return &GrassError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GrassError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GrassError {
	return &GrassError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GrassError
func Wrap(err error, code ErrorCode, message string) *GrassError {
	if err == nil {
		return nil
	}
	return &GrassError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GrassError {
	if err == nil {
		return nil
	}
	return &GrassError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GrassError) WithDetail(key string, value interface{}) *GrassError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var grassErr *GrassError
	if errors.As(err, &grassErr) {
		return grassErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GrassError
func GetErrorCode(err error) ErrorCode {
	var grassErr *GrassError
	if errors.As(err, &grassErr) {
		return grassErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a GrassError
func GetErrorDetails(err error) map[string]interface{} {
	var grassErr *GrassError
	if errors.As(err, &grassErr) {
		return grassErr.Details
	}
	return nil
}
