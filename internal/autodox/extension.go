package autodox

import (
	"context"

	"git.home.luguber.info/inful/autodox/internal/plugin"
	"git.home.luguber.info/inful/autodox/internal/version"
)

// Config value names declared by the extension.
const (
	ConfigOutdir     = "autodox_outdir"
	ConfigDoxygenExe = "autodox_doxygen_exe"
	ConfigProjects   = "autodox_projects"
)

// Extension plugs the Orchestrator into a plugin.Application.
type Extension struct {
	orchestrator *Orchestrator

	// OnResult, when set, receives the result of every run.
	OnResult func(*Result)
}

// NewExtension returns an extension that runs o on builder-inited.
func NewExtension(o *Orchestrator) *Extension {
	return &Extension{orchestrator: o}
}

// Name implements plugin.Extension.
func (e *Extension) Name() string { return "autodox" }

// Setup declares the autodox_* config values and connects generation to
// builder-inited.
func (e *Extension) Setup(app *plugin.Application) (plugin.Metadata, error) {
	values := []struct {
		name string
		def  any
	}{
		{ConfigOutdir, DefaultOutdir},
		{ConfigDoxygenExe, DefaultDoxygenExe},
		{ConfigProjects, map[string]any{}},
	}
	for _, v := range values {
		if err := app.AddConfigValue(v.name, v.def, plugin.RebuildEnv); err != nil {
			return plugin.Metadata{}, err
		}
	}

	app.Connect(plugin.EventBuilderInited, 0, e.generate)

	return plugin.Metadata{
		Version:           version.ExtensionVersion,
		ParallelReadSafe:  true,
		ParallelWriteSafe: true,
	}, nil
}

func (e *Extension) generate(ctx context.Context, app *plugin.Application) error {
	req, err := RequestFrom(app)
	if err != nil {
		return err
	}
	result, err := e.orchestrator.WithLogger(app.Logger).Run(ctx, req)
	if e.OnResult != nil && result != nil {
		e.OnResult(result)
	}
	return err
}

// RequestFrom builds a Request from the application's builder and the
// resolved autodox_* config values.
func RequestFrom(app *plugin.Application) (Request, error) {
	req := Request{
		Format:     app.Builder.Format,
		SourceRoot: app.Builder.SourceDir,
		OutputRoot: app.Builder.OutputDir,
	}
	if err := app.Decode(ConfigOutdir, &req.DefaultOutdir); err != nil {
		return Request{}, err
	}
	if err := app.Decode(ConfigDoxygenExe, &req.DoxygenExe); err != nil {
		return Request{}, err
	}
	if err := app.Decode(ConfigProjects, &req.Projects); err != nil {
		return Request{}, err
	}
	return req, nil
}
