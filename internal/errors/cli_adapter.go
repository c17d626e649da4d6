package errors

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if ae, ok := As(err); ok {
		return a.exitCodeFromCategory(ae.Category)
	}

	return 1
}

func (a *CLIErrorAdapter) exitCodeFromCategory(category ErrorCategory) int {
	switch category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryExternalTool:
		return 8 // External system error
	case CategoryFileSystem, CategoryBuilder:
		return 11 // Build error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	ae, ok := As(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return err.Error()
	}

	switch ae.Category {
	case CategoryConfig, CategoryValidation:
		if ae.Cause != nil {
			return fmt.Sprintf("%s: %v", ae.Message, ae.Cause)
		}
		return ae.Message
	default:
		return fmt.Sprintf("%s: %s", ae.Category, ae.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if ae, ok := As(err); ok {
		return ae.Category == CategoryInternal ||
			ae.Category == CategoryExternalTool ||
			ae.Severity == SeverityFatal
	}

	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	if ae, ok := As(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(ae.Category)),
		}
		for k, v := range ae.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if ae.Cause != nil {
			attrs = append(attrs, slog.String("cause", ae.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), levelFromSeverity(ae.Severity), ae.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

func levelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
