package plugin

import "fmt"

// EventName identifies a point in the application lifecycle extensions can hook into.
type EventName string

const (
	// EventConfigInited fires once configuration values are resolvable.
	EventConfigInited EventName = "config-inited"

	// EventBuilderInited fires after the builder is initialized and before any
	// document is rendered.
	EventBuilderInited EventName = "builder-inited"

	// EventBuildFinished fires after all other lifecycle events.
	EventBuildFinished EventName = "build-finished"
)

// String returns the string representation of the event name.
func (e EventName) String() string {
	return string(e)
}

// Rebuild scopes what a config value change invalidates.
type Rebuild string

const (
	// RebuildEnv invalidates cached build state as a whole.
	RebuildEnv Rebuild = "env"

	// RebuildHTML only invalidates rendered HTML output.
	RebuildHTML Rebuild = "html"

	// RebuildNone never invalidates anything.
	RebuildNone Rebuild = ""
)

// IsValid returns true if the rebuild scope is recognized.
func (r Rebuild) IsValid() bool {
	switch r {
	case RebuildEnv, RebuildHTML, RebuildNone:
		return true
	default:
		return false
	}
}

// ConfigValue is an option an extension declares, with its default.
type ConfigValue struct {
	Name    string
	Default any
	Rebuild Rebuild
}

// Metadata is what an extension reports back from Setup.
type Metadata struct {
	Version           string
	ParallelReadSafe  bool
	ParallelWriteSafe bool
}

// Validate checks if the extension metadata is valid.
func (m Metadata) Validate() error {
	if m.Version == "" {
		return fmt.Errorf("extension version is required")
	}
	return nil
}

// PluginError represents an error that occurred within an extension.
type PluginError struct {
	// PluginName identifies which extension failed.
	PluginName string

	// Operation describes what the extension was doing when it failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("extension %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new extension error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
