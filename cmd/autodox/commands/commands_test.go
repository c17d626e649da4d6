package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/autodox/internal/config"
)

func parse(t *testing.T, args ...string) (*kong.Context, *CLI, *Global) {
	t.Helper()
	var cli CLI
	global := &Global{Context: context.Background()}
	parser, err := kong.New(&cli, kong.Name("autodox"), kong.Bind(global), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx, &cli, global
}

func TestParse_Defaults(t *testing.T) {
	kctx, cli, global := parse(t, "build")

	assert.Equal(t, "build", kctx.Command())
	assert.Equal(t, config.DefaultFile, filepath.Base(cli.Config))
	assert.Equal(t, "doxysphinx", cli.Build.DoxysphinxExe)
	assert.NotNil(t, global.Logger)
}

func TestParse_WatchFlags(t *testing.T) {
	_, cli, _ := parse(t, "-v", "watch", "--interval", "10m", "--debounce", "500ms", "--metrics-addr", ":9090", "-b", "latex")

	assert.True(t, cli.Verbose)
	assert.Equal(t, 10*time.Minute, cli.Watch.Interval)
	assert.Equal(t, 500*time.Millisecond, cli.Watch.Debounce)
	assert.Equal(t, ":9090", cli.Watch.MetricsAddr)
	assert.Equal(t, "latex", cli.Watch.Builder)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	kctx, cli, global := parse(t, "-c", path, "init")

	require.NoError(t, kctx.Run(global, cli))
	_, err := os.Stat(path)
	require.NoError(t, err)

	assert.Error(t, kctx.Run(global, cli), "init refuses to overwrite without --force")
}

func TestSiteFlagsApply(t *testing.T) {
	cfg, err := config.Parse([]byte("builder: html\n"), "/site")
	require.NoError(t, err)

	flags := SiteFlags{Builder: "singlehtml", Outdir: "/elsewhere"}
	require.NoError(t, flags.apply(cfg))
	assert.Equal(t, "singlehtml", cfg.Builder)
	assert.Equal(t, "/site", cfg.SrcDir)
	assert.Equal(t, "/elsewhere", cfg.OutDir)
}

func TestBuildCommand_NonHTMLBuilderRunsNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("autodox_projects:\n  core: core\n"), 0o644))

	kctx, cli, global := parse(t, "-c", path, "build", "-b", "latex")
	require.NoError(t, kctx.Run(global, cli))

	_, err := os.Stat(filepath.Join(dir, "_doxygen"))
	assert.True(t, os.IsNotExist(err))
}
