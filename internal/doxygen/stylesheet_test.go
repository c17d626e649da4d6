package doxygen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstallStylesheet(t *testing.T) {
	dir := t.TempDir()

	path, err := InstallStylesheet(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, StylesheetName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, stylesheetCSS, data)
	require.NotEmpty(t, data)

	again, err := InstallStylesheet(dir)
	require.NoError(t, err)
	require.Equal(t, path, again)
}
