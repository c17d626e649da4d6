// Package commands implements the autodox command line.
package commands

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/autodox/internal/build"
	"git.home.luguber.info/inful/autodox/internal/config"
	"git.home.luguber.info/inful/autodox/internal/metrics"
	"git.home.luguber.info/inful/autodox/internal/process"
)

// Global is shared by every subcommand.
type Global struct {
	Context context.Context
	Logger  *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string `short:"c" help:"Site configuration file path" default:"autodox.yaml" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build   BuildCmd   `cmd:"" help:"Generate and embed Doxygen documentation for every configured project"`
	Watch   WatchCmd   `cmd:"" help:"Build, then rebuild when the configuration or a Doxyfile changes"`
	Init    InitCmd    `cmd:"" help:"Write an example site configuration"`
	Version VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	if g.Context == nil {
		g.Context = context.Background()
	}
	return nil
}

// SiteFlags override the builder and roots of the configuration file.
type SiteFlags struct {
	Builder       string `short:"b" help:"Builder name (overrides the configuration)"`
	Srcdir        string `help:"Site source root (overrides the configuration)" type:"path"`
	Outdir        string `help:"Site output root (overrides the configuration)" type:"path"`
	DoxysphinxExe string `name:"doxysphinx-exe" help:"doxysphinx executable" default:"doxysphinx" env:"AUTODOX_DOXYSPHINX"`
}

func (f SiteFlags) apply(cfg *config.Config) error {
	return cfg.Override(f.Builder, f.Srcdir, f.Outdir)
}

func (f SiteFlags) service(g *Global, recorder metrics.Recorder) *build.Service {
	return build.NewService(process.NewExecRunner(g.Logger)).
		WithLogger(g.Logger).
		WithRecorder(recorder).
		WithDoxysphinxExe(f.DoxysphinxExe)
}
