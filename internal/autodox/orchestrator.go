package autodox

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/autodox/internal/doxygen"
	derrors "git.home.luguber.info/inful/autodox/internal/errors"
	"git.home.luguber.info/inful/autodox/internal/logfields"
	"git.home.luguber.info/inful/autodox/internal/metrics"
	"git.home.luguber.info/inful/autodox/internal/observability"
	"git.home.luguber.info/inful/autodox/internal/process"
)

// Orchestrator generates and embeds Doxygen documentation for a list of
// projects.
type Orchestrator struct {
	runner        process.Runner
	recorder      metrics.Recorder
	logger        *slog.Logger
	doxysphinxExe string
}

// NewOrchestrator returns an orchestrator running external tools through
// runner.
func NewOrchestrator(runner process.Runner) *Orchestrator {
	return &Orchestrator{
		runner:        runner,
		recorder:      metrics.NoopRecorder{},
		logger:        slog.Default(),
		doxysphinxExe: DefaultDoxysphinxExe,
	}
}

// WithRecorder sets the metrics recorder.
func (o *Orchestrator) WithRecorder(r metrics.Recorder) *Orchestrator {
	if r != nil {
		o.recorder = r
	}
	return o
}

// WithLogger sets the base logger.
func (o *Orchestrator) WithLogger(l *slog.Logger) *Orchestrator {
	if l != nil {
		o.logger = l
	}
	return o
}

// WithDoxysphinxExe overrides the doxysphinx executable.
func (o *Orchestrator) WithDoxysphinxExe(exe string) *Orchestrator {
	if exe != "" {
		o.doxysphinxExe = exe
	}
	return o
}

// Run processes every project of req in order. Output formats other than
// html are skipped without touching the filesystem. The first project that
// fails stops the run; outputs already written are left in place.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{StartTime: time.Now(), BuildID: observability.NewBuildID()}
	ctx = observability.WithBuildID(ctx, result.BuildID)
	log := observability.Logger(ctx, o.logger)

	if req.Format != SupportedFormat {
		notice := derrors.UnsupportedOutputFormat(req.Format)
		log.Info("[autodox] output not supported, ignoring", logfields.Format(req.Format), logfields.Error(notice))
		o.recorder.IncBuildOutcome(metrics.BuildOutcomeSkipped)
		return result.finish(StatusSkipped), nil
	}

	sourceRoot, err := filepath.Abs(req.SourceRoot)
	if err != nil {
		o.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return result.finish(StatusFailed), derrors.WorkspaceError("resolve source root", err)
	}
	outputRoot, err := filepath.Abs(req.OutputRoot)
	if err != nil {
		o.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return result.finish(StatusFailed), derrors.WorkspaceError("resolve output root", err)
	}
	req.SourceRoot, req.OutputRoot = sourceRoot, outputRoot
	if req.DefaultOutdir == "" {
		req.DefaultOutdir = DefaultOutdir
	}
	if req.DoxygenExe == "" {
		req.DoxygenExe = DefaultDoxygenExe
	}

	for _, project := range req.Projects {
		if err := ctx.Err(); err != nil {
			o.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
			o.recorder.ObserveBuildDuration(time.Since(result.StartTime))
			return result.finish(StatusCanceled), err
		}

		pctx := observability.WithProject(ctx, project.Name)
		start := time.Now()
		err := o.runProject(pctx, req, project)
		d := time.Since(start)

		if err != nil {
			label := metrics.ResultFailed
			if errors.Is(err, context.Canceled) {
				label = metrics.ResultCanceled
			}
			o.recorder.ObserveProjectDuration(project.Name, d, label)
			observability.Logger(pctx, o.logger).Error("[autodox] project failed",
				logfields.DurationMS(float64(d.Milliseconds())), logfields.Error(err))

			result.Failed = project.Name
			status, outcome := StatusFailed, metrics.BuildOutcomeFailed
			if label == metrics.ResultCanceled {
				status, outcome = StatusCanceled, metrics.BuildOutcomeCanceled
			}
			o.recorder.IncBuildOutcome(outcome)
			o.recorder.ObserveBuildDuration(time.Since(result.StartTime))
			return result.finish(status), err
		}

		o.recorder.ObserveProjectDuration(project.Name, d, metrics.ResultSuccess)
		result.Generated = append(result.Generated, project.Name)
	}

	o.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	o.recorder.ObserveBuildDuration(time.Since(result.StartTime))
	log.Info("[autodox] done", slog.Int("projects", len(result.Generated)))
	return result.finish(StatusSuccess), nil
}

func (o *Orchestrator) runProject(ctx context.Context, req Request, project Project) error {
	log := observability.Logger(ctx, o.logger)
	log.Info("[autodox] processing project")
	settings := project.Settings

	paths := ResolvePaths(req.SourceRoot, req.DefaultOutdir, project)
	if err := os.MkdirAll(paths.OutputDir, 0o755); err != nil {
		return derrors.WorkspaceError("create output directory", err).WithContext("path", paths.OutputDir)
	}

	exe := settings.DoxygenExe
	if exe == "" {
		exe = req.DoxygenExe
	}
	runner := &countingRunner{next: o.runner, recorder: o.recorder}

	cfg, err := doxygen.ReadConfig(observability.WithStage(ctx, "configure"), runner, paths.Doxyfile, exe, paths.SourceDir)
	if err != nil {
		return err
	}

	paths = paths.WithHTMLOutput(cfg.Lookup(doxygen.KeyHTMLOutput))

	if !settings.Conforming {
		stylesheet, err := doxygen.InstallStylesheet(paths.OutputDir)
		if err != nil {
			return derrors.WorkspaceError("install stylesheet", err).WithContext("path", paths.OutputDir)
		}
		doxygen.ApplyConformingDefaults(cfg, stylesheet)
	}
	cfg.SetString(doxygen.KeyOutputDirectory, paths.OutputDir)
	cfg.SetString(doxygen.KeyGenerateTagfile, paths.Tagfile)

	if len(settings.TagFiles) > 0 {
		entries := make([]string, 0, len(settings.TagFiles))
		for _, tf := range settings.TagFiles {
			entry, err := TagfileEntry(req.SourceRoot, paths, tf)
			if err != nil {
				return derrors.ValidationFailed("tagfiles", err.Error())
			}
			entries = append(entries, entry)
		}
		cfg.Append(doxygen.KeyTagfiles, entries...)
	}

	if err := cfg.WriteFile(paths.GeneratedDoxyfile); err != nil {
		return derrors.WorkspaceError("write doxyfile", err).WithContext("path", paths.GeneratedDoxyfile)
	}
	log.Debug("[autodox] wrote doxyfile", logfields.Path(paths.GeneratedDoxyfile))

	generate := process.Command{Name: exe, Args: []string{paths.GeneratedDoxyfile}, Dir: paths.SourceDir}
	if err := o.invoke(observability.WithStage(ctx, "generate"), runner, generate); err != nil {
		return err
	}

	embed := process.Command{
		Name: o.doxysphinxExe,
		Args: []string{"build", req.SourceRoot, req.OutputRoot, paths.HTMLOutputDir},
		Dir:  paths.SourceDir,
	}
	return o.invoke(observability.WithStage(ctx, "embed"), runner, embed)
}

func (o *Orchestrator) invoke(ctx context.Context, runner process.Runner, cmd process.Command) error {
	log := observability.Logger(ctx, o.logger)
	log.Debug("[autodox] running", logfields.Executable(cmd.Name), logfields.Args(cmd.Args), logfields.Dir(cmd.Dir))

	if _, err := runner.Run(ctx, cmd); err != nil {
		var exitErr *process.ExitError
		if errors.As(err, &exitErr) {
			log.Error("[autodox] tool failed",
				logfields.Executable(cmd.Name),
				logfields.ExitCode(exitErr.Result.ExitCode))
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		return derrors.ExternalToolFailed(filepath.Base(cmd.Name), err).WithContext("command", cmd.String())
	}
	return nil
}

// countingRunner counts every invocation by tool and result.
type countingRunner struct {
	next     process.Runner
	recorder metrics.Recorder
}

func (r *countingRunner) Run(ctx context.Context, cmd process.Command) (process.Result, error) {
	res, err := r.next.Run(ctx, cmd)
	label := metrics.ResultSuccess
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		label = metrics.ResultCanceled
	default:
		label = metrics.ResultFailed
	}
	r.recorder.IncToolInvocation(filepath.Base(cmd.Name), label)
	return res, err
}
