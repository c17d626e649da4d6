package doxygen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyConformingDefaults_Overrides(t *testing.T) {
	cfg := New()
	cfg.SetString("PROJECT_NAME", "Demo")
	cfg.SetString("GENERATE_TREEVIEW", "YES")
	cfg.SetString("SEARCHENGINE", "YES")

	ApplyConformingDefaults(cfg, "/themes/awesome.css")

	require.Equal(t, "NO", cfg.Lookup("GENERATE_TREEVIEW"))
	require.Equal(t, "NO", cfg.Lookup("SEARCHENGINE"))
	require.Equal(t, "YES", cfg.Lookup("GENERATE_HTML"))
	require.Equal(t, "svg", cfg.Lookup("DOT_IMAGE_FORMAT"))
	require.Equal(t, "/themes/awesome.css", cfg.Lookup(KeyHTMLExtraStylesheet))
	require.Equal(t, "Demo", cfg.Lookup("PROJECT_NAME"))
	require.Equal(t, "PROJECT_NAME", cfg.Keys()[0])
}

func TestApplyConformingDefaults_Idempotent(t *testing.T) {
	once := New()
	once.SetString("PROJECT_NAME", "Demo")
	once.Set("INPUT", List("a", "b"))
	ApplyConformingDefaults(once, "/s.css")

	twice := once.Clone()
	ApplyConformingDefaults(twice, "/s.css")

	require.Equal(t, once, twice)
}

func TestConformingDefaults_Keys(t *testing.T) {
	cfg := ConformingDefaults("x.css")
	require.Equal(t, []string{
		"GENERATE_TREEVIEW", "DISABLE_INDEX", "SEARCHENGINE", "GENERATE_HTML",
		"CREATE_SUBDIRS", "DOT_IMAGE_FORMAT", "DOT_TRANSPARENT", "INTERACTIVE_SVG",
		KeyHTMLExtraStylesheet,
	}, cfg.Keys())
}
