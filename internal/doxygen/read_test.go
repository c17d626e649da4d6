package doxygen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/autodox/internal/errors"
	"git.home.luguber.info/inful/autodox/internal/process"
	"git.home.luguber.info/inful/autodox/internal/process/processtest"
)

func writeDoxyfile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "Doxyfile")
	require.NoError(t, os.WriteFile(path, []byte("PROJECT_NAME = Demo\n"), 0o644))
	return path
}

func dryRunHandler(cmd process.Command) (process.Result, error) {
	switch cmd.Args[0] {
	case "-s":
		return process.Result{Stdout: []byte("PROJECT_NAME = \"My Project\"\nHTML_OUTPUT = html\nINPUT =\n")}, nil
	case "-x_noenv":
		return process.Result{Stdout: []byte("# Difference with default Doxyfile\nPROJECT_NAME = Demo\nINPUT = src include\n")}, nil
	}
	return processtest.Exit(cmd, 1, "unexpected")
}

func TestReadConfig_MergesDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	doxyfile := writeDoxyfile(t, dir)
	runner := processtest.NewRunner(dryRunHandler)

	cfg, err := ReadConfig(context.Background(), runner, doxyfile, "doxygen-1.9", dir)
	require.NoError(t, err)

	require.Equal(t, []string{"PROJECT_NAME", "HTML_OUTPUT", "INPUT"}, cfg.Keys())
	require.Equal(t, "Demo", cfg.Lookup("PROJECT_NAME"))
	require.Equal(t, "html", cfg.Lookup(KeyHTMLOutput))
	in, _ := cfg.Get("INPUT")
	require.Equal(t, []string{"src", "include"}, in.Items())

	cmds := runner.Commands()
	require.Len(t, cmds, 2)
	require.Equal(t, DefaultsCommand("doxygen-1.9", dir), cmds[0])
	require.Equal(t, OverridesCommand("doxygen-1.9", doxyfile, dir), cmds[1])
}

func TestReadConfig_MissingDoxyfile(t *testing.T) {
	runner := processtest.NewRunner(nil)
	_, err := ReadConfig(context.Background(), runner, filepath.Join(t.TempDir(), "Doxyfile"), "doxygen", ".")

	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Empty(t, runner.Commands())
}

func TestReadConfig_MissingExecutable(t *testing.T) {
	dir := t.TempDir()
	runner := processtest.NewRunner(processtest.NotFound)

	_, err := ReadConfig(context.Background(), runner, writeDoxyfile(t, dir), "nodoxygen", dir)
	require.ErrorIs(t, err, process.ErrExecutableNotFound)
	require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestReadConfig_NonZeroDryRun(t *testing.T) {
	dir := t.TempDir()
	runner := processtest.NewRunner(func(cmd process.Command) (process.Result, error) {
		if cmd.Args[0] == "-x_noenv" {
			return processtest.Exit(cmd, 1, "error: Doxyfile is malformed")
		}
		return process.Result{Stdout: []byte("HTML_OUTPUT = html\n")}, nil
	})

	_, err := ReadConfig(context.Background(), runner, writeDoxyfile(t, dir), "doxygen", dir)
	var exitErr *process.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Result.ExitCode)
	require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestReadConfig_UnparsableOutput(t *testing.T) {
	dir := t.TempDir()
	runner := processtest.NewRunner(func(process.Command) (process.Result, error) {
		return process.Result{Stdout: []byte("not a doxyfile\n")}, nil
	})

	_, err := ReadConfig(context.Background(), runner, writeDoxyfile(t, dir), "doxygen", dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 1")
}
