package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *AutodoxError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *AutodoxError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// DoxyfileUnreadable reports a Doxyfile that is missing, or that the dry
// doxygen invocation could not turn into a configuration.
func DoxyfileUnreadable(path string, cause error) *AutodoxError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "doxygen configuration could not be read").
		WithContext("path", path)
}

// Build errors

func UnsupportedOutputFormat(format string) *AutodoxError {
	return New(CategoryBuilder, SeverityWarning, "output format not supported").
		WithContext("format", format)
}

func ExternalToolFailed(tool string, cause error) *AutodoxError {
	return Wrap(cause, CategoryExternalTool, SeverityFatal, "external tool failed").
		WithContext("tool", tool)
}

func WorkspaceError(operation string, cause error) *AutodoxError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *AutodoxError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
