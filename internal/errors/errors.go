// Package errors provides a lightweight structured error type (AutodoxError)
// for category-based classification in the orchestrator and CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of an autodox error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// The site builder asked for an output autodox does not produce
	CategoryBuilder ErrorCategory = "builder"

	// doxygen / doxysphinx invocations
	CategoryExternalTool ErrorCategory = "external_tool"

	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// AutodoxError is a structured error with category, severity and context
type AutodoxError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for AutodoxError
type ContextFields map[string]any

// Error implements the error interface
func (e *AutodoxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *AutodoxError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *AutodoxError) WithContext(key string, value any) *AutodoxError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new AutodoxError
func New(category ErrorCategory, severity ErrorSeverity, message string) *AutodoxError {
	return &AutodoxError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new AutodoxError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *AutodoxError {
	return &AutodoxError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost AutodoxError in err's chain.
func As(err error) (*AutodoxError, bool) {
	var ae *AutodoxError
	if stdErrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ae, ok := As(err); ok {
		return ae.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not an AutodoxError
func GetCategory(err error) ErrorCategory {
	if ae, ok := As(err); ok {
		return ae.Category
	}
	return CategoryInternal
}
