package doxygen

// Option names autodox reads or forces.
const (
	KeyHTMLOutput          = "HTML_OUTPUT"
	KeyOutputDirectory     = "OUTPUT_DIRECTORY"
	KeyGenerateTagfile     = "GENERATE_TAGFILE"
	KeyTagfiles            = "TAGFILES"
	KeyHTMLExtraStylesheet = "HTML_EXTRA_STYLESHEET"
)

// DefaultHTMLOutput is doxygen's own default for HTML_OUTPUT.
const DefaultHTMLOutput = "html"

// ConformingDefaults returns the settings doxysphinx needs from a doxygen
// HTML build: no tree view, search or subdirectories, SVG diagrams, and the
// bundled stylesheet.
func ConformingDefaults(stylesheet string) *Config {
	cfg := New()
	cfg.SetString("GENERATE_TREEVIEW", "NO")
	cfg.SetString("DISABLE_INDEX", "NO")
	cfg.SetString("SEARCHENGINE", "NO")
	cfg.SetString("GENERATE_HTML", "YES")
	cfg.SetString("CREATE_SUBDIRS", "NO")
	cfg.SetString("DOT_IMAGE_FORMAT", "svg")
	cfg.SetString("DOT_TRANSPARENT", "YES")
	cfg.SetString("INTERACTIVE_SVG", "YES")
	cfg.SetString(KeyHTMLExtraStylesheet, stylesheet)
	return cfg
}

// ApplyConformingDefaults overlays ConformingDefaults onto cfg, overriding
// conflicting values. Applying it more than once changes nothing.
func ApplyConformingDefaults(cfg *Config, stylesheet string) *Config {
	cfg.Update(ConformingDefaults(stylesheet))
	return cfg
}
