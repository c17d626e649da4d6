package doxygen

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/adnsv/go-utils/fs"

	derrors "git.home.luguber.info/inful/autodox/internal/errors"
	"git.home.luguber.info/inful/autodox/internal/process"
)

// DefaultsCommand dumps doxygen's built-in defaults as a Doxyfile on stdout.
func DefaultsCommand(executable, workDir string) process.Command {
	return process.Command{Name: executable, Args: []string{"-s", "-g", "-"}, Dir: workDir}
}

// OverridesCommand dumps the options of doxyfilePath that differ from the
// defaults, without expanding environment variables.
func OverridesCommand(executable, doxyfilePath, workDir string) process.Command {
	return process.Command{Name: executable, Args: []string{"-x_noenv", doxyfilePath}, Dir: workDir}
}

// ReadConfig returns the effective configuration of doxyfilePath: doxygen's
// defaults overlaid with the file's own settings, both obtained from dry
// invocations of executable running in workDir. Nothing is generated.
//
// Errors are classified as config errors: the Doxyfile is missing, the
// executable is missing, or a dry invocation exited non-zero.
func ReadConfig(ctx context.Context, runner process.Runner, doxyfilePath, executable, workDir string) (*Config, error) {
	if !fs.FileExists(doxyfilePath) {
		return nil, derrors.DoxyfileUnreadable(doxyfilePath, fmt.Errorf("%w: %s", os.ErrNotExist, doxyfilePath))
	}

	cfg, err := dump(ctx, runner, DefaultsCommand(executable, workDir))
	if err != nil {
		return nil, derrors.DoxyfileUnreadable(doxyfilePath, err).WithContext("executable", executable)
	}
	overrides, err := dump(ctx, runner, OverridesCommand(executable, doxyfilePath, workDir))
	if err != nil {
		return nil, derrors.DoxyfileUnreadable(doxyfilePath, err).WithContext("executable", executable)
	}
	cfg.Update(overrides)
	return cfg, nil
}

func dump(ctx context.Context, runner process.Runner, cmd process.Command) (*Config, error) {
	res, err := runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(bytes.NewReader(res.Stdout))
	if err != nil {
		return nil, fmt.Errorf("parse output of %s: %w", cmd, err)
	}
	return cfg, nil
}
