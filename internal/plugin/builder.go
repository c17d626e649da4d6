package plugin

// Builder describes the output being produced by the application.
type Builder struct {
	// Name is the builder name as configured (e.g., "html", "latex").
	Name string

	// Format is the output format family of the builder.
	Format string

	// SourceDir is the absolute documentation source root.
	SourceDir string

	// OutputDir is the absolute output root.
	OutputDir string
}

var builderFormats = map[string]string{
	"html":       "html",
	"dirhtml":    "html",
	"singlehtml": "html",
	"latex":      "latex",
	"man":        "man",
	"text":       "text",
	"xml":        "xml",
}

// FormatFor returns the output format of a builder name. Unknown builders
// are their own format.
func FormatFor(builder string) string {
	if f, ok := builderFormats[builder]; ok {
		return f
	}
	return builder
}

// NewBuilder returns a Builder whose format is derived from name.
func NewBuilder(name, sourceDir, outputDir string) Builder {
	return Builder{Name: name, Format: FormatFor(name), SourceDir: sourceDir, OutputDir: outputDir}
}
