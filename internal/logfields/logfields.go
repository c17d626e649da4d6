package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyProject    = "project"
	KeyPath       = "path"
	KeyExecutable = "executable"
	KeyArgs       = "args"
	KeyDir        = "dir"
	KeyExitCode   = "exit_code"
	KeyFormat     = "format"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Project(name string) slog.Attr   { return slog.String(KeyProject, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Executable(e string) slog.Attr   { return slog.String(KeyExecutable, e) }
func Args(a []string) slog.Attr       { return slog.Any(KeyArgs, a) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func ExitCode(c int) slog.Attr        { return slog.Int(KeyExitCode, c) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
