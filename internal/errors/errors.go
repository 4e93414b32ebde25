package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please pass a file path or pipe a document to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrInvalidUTF8     = errors.New("input is not valid UTF-8")
)

// Parse errors. Every parse failure unwraps to exactly one of these.
var (
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrInvalidBoolean   = errors.New("invalid boolean value")
	ErrUnterminatedText = errors.New("unterminated text")
	ErrTrailingData     = errors.New("trailing data after root value")
	ErrMaxDepth         = errors.New("maximum nesting depth exceeded")
)

// Lookup errors returned by keyed and indexed access on a parsed tree.
var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTypeMismatch    = errors.New("type mismatch")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeReport  ErrorType = "report"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input loading
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to document parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewReportError creates a new error related to building the report
func NewReportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeReport,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			// The cause carries the position and the offending token.
			if appErr.Err != nil {
				return fmt.Sprintf("Parse error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Parse error: %s", appErr.Message)
		case ErrorTypeConfig:
			if appErr.Err != nil {
				return fmt.Sprintf("Configuration error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeReport:
			if appErr.Err != nil {
				return fmt.Sprintf("Report error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Report error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a document to parse."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please pass a file path or pipe a document to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrInvalidUTF8) {
		return "Error: The input is not valid UTF-8 text."
	}

	return fmt.Sprintf("Error: %v", err)
}
