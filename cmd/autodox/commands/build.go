package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/autodox/internal/config"
	"git.home.luguber.info/inful/autodox/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SiteFlags `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	g.Logger.Info("Starting autodox build",
		slog.String("builder", cfg.Builder),
		slog.String("srcdir", cfg.SrcDir),
		slog.String("outdir", cfg.OutDir))

	result, err := b.service(g, metrics.NoopRecorder{}).Run(g.Context, cfg)
	if err != nil {
		return err
	}
	if result != nil {
		g.Logger.Info("Build completed",
			slog.String("status", string(result.Status)),
			slog.Int("projects", len(result.Generated)),
			slog.Duration("duration", result.Duration))
	}
	return nil
}
