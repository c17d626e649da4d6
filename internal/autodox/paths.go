package autodox

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/autodox/internal/doxygen"
)

// TagfileName is the tag file doxygen writes next to a project's HTML.
const TagfileName = "tagfile.xml"

// Paths are the absolute locations used while building one project.
type Paths struct {
	SourceDir         string
	OutputDir         string
	Doxyfile          string
	GeneratedDoxyfile string

	// Set once the base configuration is known, see WithHTMLOutput.
	HTMLOutputDir string
	Tagfile       string
}

// resolvePath joins p onto root unless p is already absolute.
func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// ResolvePaths derives project paths from its settings. sourceRoot must be
// absolute.
func ResolvePaths(sourceRoot, defaultOutdir string, p Project) Paths {
	s := p.Settings

	srcdir := s.SrcDir
	if srcdir == "" {
		srcdir = "."
	}
	outdir := s.OutDir
	if outdir == "" {
		outdir = filepath.Join(defaultOutdir, p.Name)
	}
	doxyfile := s.Doxyfile
	if doxyfile == "" {
		doxyfile = DefaultDoxyfile
	}

	paths := Paths{
		SourceDir: resolvePath(sourceRoot, srcdir),
		OutputDir: resolvePath(sourceRoot, outdir),
	}
	paths.Doxyfile = resolvePath(paths.SourceDir, doxyfile)
	paths.GeneratedDoxyfile = filepath.Join(paths.OutputDir, p.Name+".Doxyfile")
	return paths
}

// WithHTMLOutput fills in the HTML output directory and tag file from the
// HTML_OUTPUT option. An empty option means doxygen's default.
func (p Paths) WithHTMLOutput(htmlOutput string) Paths {
	if htmlOutput == "" {
		htmlOutput = doxygen.DefaultHTMLOutput
	}
	p.HTMLOutputDir = resolvePath(p.OutputDir, htmlOutput)
	p.Tagfile = filepath.Join(p.HTMLOutputDir, TagfileName)
	return p
}

// TagfileEntry renders one TAGFILES element: the tag file relative to the
// project source dir and the site location relative to the project's HTML
// output, joined by "=".
func TagfileEntry(sourceRoot string, paths Paths, tf TagFile) (string, error) {
	tagfile, err := filepath.Rel(paths.SourceDir, resolvePath(sourceRoot, tf.Path))
	if err != nil {
		return "", fmt.Errorf("tagfile %s: %w", tf.Path, err)
	}
	sitepath, err := filepath.Rel(paths.HTMLOutputDir, resolvePath(sourceRoot, tf.SitePath))
	if err != nil {
		return "", fmt.Errorf("sitepath %s: %w", tf.SitePath, err)
	}
	return tagfile + "=" + sitepath, nil
}
