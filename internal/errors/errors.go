package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	// Details carries machine-readable context, e.g. the missing column names of a SCHEMA_ERROR.
	Details []string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. The code of a wrapped AppError is preserved.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Details: appErr.Details,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Details: appErr.Details,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is (or wraps) an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// GetDetails returns the details of the outermost AppError in the chain.
func GetDetails(err error) []string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && GetCode(err) == code
}

// Predefined error codes
const (
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeDataLoad            = "DATA_LOAD_ERROR"
	CodeSchema              = "SCHEMA_ERROR"
	CodeFilterConstruction  = "FILTER_CONSTRUCTION_ERROR"
	CodeComparisonUndefined = "COMPARISON_UNDEFINED"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// DataLoad reports a missing or unparsable input file.
func DataLoad(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeDataLoad,
		Message: fmt.Sprintf("could not load dataset %q", path),
		Details: []string{path},
		Cause:   cause,
	}
}

// Schema reports the required columns absent from the input header.
func Schema(missing []string) *AppError {
	return &AppError{
		Code:    CodeSchema,
		Message: fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")),
		Details: append([]string(nil), missing...),
	}
}

func FilterConstruction(message string) *AppError {
	return New(CodeFilterConstruction, message)
}

func ComparisonUndefined(reason string) *AppError {
	return New(CodeComparisonUndefined, reason)
}

func IsDataLoad(err error) bool            { return HasCode(err, CodeDataLoad) }
func IsSchema(err error) bool              { return HasCode(err, CodeSchema) }
func IsFilterConstruction(err error) bool  { return HasCode(err, CodeFilterConstruction) }
func IsComparisonUndefined(err error) bool { return HasCode(err, CodeComparisonUndefined) }
