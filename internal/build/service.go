package build

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/autodox/internal/autodox"
	"git.home.luguber.info/inful/autodox/internal/config"
	"git.home.luguber.info/inful/autodox/internal/metrics"
	"git.home.luguber.info/inful/autodox/internal/plugin"
	"git.home.luguber.info/inful/autodox/internal/process"
)

// Service runs site builds.
type Service struct {
	runner        process.Runner
	recorder      metrics.Recorder
	logger        *slog.Logger
	doxysphinxExe string
}

// NewService creates a Service running external tools through runner.
func NewService(runner process.Runner) *Service {
	return &Service{
		runner:   runner,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder sets the metrics recorder handed to the orchestrator.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithLogger sets the logger.
func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// WithDoxysphinxExe overrides the doxysphinx executable.
func (s *Service) WithDoxysphinxExe(exe string) *Service {
	s.doxysphinxExe = exe
	return s
}

// Site is a configuration prepared for building: the application with the
// autodox extension registered on it.
type Site struct {
	Config      *config.Config
	App         *plugin.Application
	Request     autodox.Request
	Fingerprint string

	ext *autodox.Extension
}

// Prepare sets up the application for cfg without running anything.
func (s *Service) Prepare(cfg *config.Config) (*Site, error) {
	builder := plugin.NewBuilder(cfg.Builder, cfg.SrcDir, cfg.OutDir)
	app := plugin.NewApplication(builder, cfg.Values, s.logger)

	orch := autodox.NewOrchestrator(s.runner).
		WithRecorder(s.recorder).
		WithLogger(s.logger).
		WithDoxysphinxExe(s.doxysphinxExe)
	ext := autodox.NewExtension(orch)
	if _, err := app.Setup(ext); err != nil {
		return nil, err
	}

	declared := make(map[string]bool)
	for _, v := range app.ConfigValues() {
		declared[v.Name] = true
	}
	for _, name := range cfg.Order {
		if !declared[name] {
			s.logger.Warn("Unknown config value", slog.String("name", name), slog.String("path", cfg.Path))
		}
	}

	req, err := autodox.RequestFrom(app)
	if err != nil {
		return nil, err
	}
	fp, err := app.EnvFingerprint()
	if err != nil {
		return nil, err
	}
	return &Site{Config: cfg, App: app, Request: req, Fingerprint: fp, ext: ext}, nil
}

// Build runs the application lifecycle of site and returns what autodox did.
// The result is nil when autodox never ran.
func (s *Service) Build(ctx context.Context, site *Site) (*autodox.Result, error) {
	var result *autodox.Result
	site.ext.OnResult = func(r *autodox.Result) { result = r }
	defer func() { site.ext.OnResult = nil }()

	err := site.App.Build(ctx)
	return result, err
}

// Run prepares and builds cfg.
func (s *Service) Run(ctx context.Context, cfg *config.Config) (*autodox.Result, error) {
	site, err := s.Prepare(cfg)
	if err != nil {
		return nil, err
	}
	return s.Build(ctx, site)
}

// WatchPaths lists the directories holding each project's Doxyfile and the
// Doxyfiles themselves.
func (site *Site) WatchPaths() (dirs, doxyfiles []string) {
	seen := make(map[string]bool)
	for _, p := range site.Request.Projects {
		paths := autodox.ResolvePaths(site.Request.SourceRoot, site.Request.DefaultOutdir, p)
		doxyfiles = append(doxyfiles, paths.Doxyfile)
		dir := filepath.Dir(paths.Doxyfile)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, doxyfiles
}
