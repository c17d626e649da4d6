package doxygen

import (
	_ "embed"
	"path/filepath"

	"github.com/adnsv/go-utils/fs"
)

// StylesheetName is the file name the bundled stylesheet is installed under.
const StylesheetName = "doxygen-awesome.css"

//go:embed assets/doxygen-awesome.css
var stylesheetCSS []byte

// InstallStylesheet writes the bundled stylesheet into dir and returns its
// path. The file is only rewritten when its content differs.
func InstallStylesheet(dir string) (string, error) {
	path := filepath.Join(dir, StylesheetName)
	if err := fs.WriteFileIfChanged(path, stylesheetCSS); err != nil {
		return "", err
	}
	return path, nil
}
