package autodox

import "time"

const (
	DefaultDoxyfile      = "Doxyfile"
	DefaultDoxygenExe    = "doxygen"
	DefaultDoxysphinxExe = "doxysphinx"
	DefaultOutdir        = "_doxygen"

	// SupportedFormat is the only builder format autodox generates for.
	SupportedFormat = "html"
)

// Request contains the inputs of one autodox run.
type Request struct {
	// Format is the builder's output format family.
	Format string

	// SourceRoot is the site source root. Relative project paths are
	// resolved against it.
	SourceRoot string

	// OutputRoot is the site output root handed to doxysphinx.
	OutputRoot string

	// DefaultOutdir is the parent of per-project output dirs that do not set
	// their own, relative to SourceRoot.
	DefaultOutdir string

	// DoxygenExe is used by projects that do not set doxygen_exe.
	DoxygenExe string

	Projects ProjectMap
}

// Status is the overall outcome of a run.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Result describes what a run did.
type Result struct {
	Status Status

	// BuildID correlates the run's log lines.
	BuildID string

	// Generated lists, in order, the projects whose documentation was
	// generated and embedded.
	Generated []string

	// Failed is the project that stopped the run, if any.
	Failed string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

func (r *Result) finish(status Status) *Result {
	r.Status = status
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	return r
}
