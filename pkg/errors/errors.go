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
	ErrUnknown     ErrorCode = "UNKNOWN"
	ErrInternal    ErrorCode = "INTERNAL"
	ErrInterrupted ErrorCode = "INTERRUPTED"
	ErrRunLocked   ErrorCode = "RUN_LOCKED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Rule errors
	ErrRuleInvalid ErrorCode = "RULE_INVALID"
	ErrRuleLoad    ErrorCode = "RULE_LOAD"

	// Source path errors
	ErrPathNotFound ErrorCode = "PATH_NOT_FOUND"
	ErrPathNotDir   ErrorCode = "PATH_NOT_DIR"

	// FileSystem errors, recovered per file or directory
	ErrFileMove  ErrorCode = "FILE_MOVE"
	ErrDirCreate ErrorCode = "DIR_CREATE"
	ErrDirRemove ErrorCode = "DIR_REMOVE"
)

// OrganizerError represents a structured error with code and details
type OrganizerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OrganizerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OrganizerError) Unwrap() error {
	return e.Wrapped
}

// Is matches another OrganizerError by code
func (e *OrganizerError) Is(target error) bool {
	var targetErr *OrganizerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new OrganizerError with the given code and message
func New(code ErrorCode, message string) *OrganizerError {
	return &OrganizerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OrganizerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OrganizerError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with an OrganizerError
func Wrap(err error, code ErrorCode, message string) *OrganizerError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OrganizerError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *OrganizerError) WithDetail(key string, value interface{}) *OrganizerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *OrganizerError) WithDetails(details map[string]interface{}) *OrganizerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var orgErr *OrganizerError
	if errors.As(err, &orgErr) {
		return orgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an OrganizerError
func GetErrorCode(err error) ErrorCode {
	var orgErr *OrganizerError
	if errors.As(err, &orgErr) {
		return orgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an OrganizerError
func GetErrorDetails(err error) map[string]interface{} {
	var orgErr *OrganizerError
	if errors.As(err, &orgErr) {
		return orgErr.Details
	}
	return nil
}
