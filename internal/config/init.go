package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# autodox site configuration.
builder: html
srcdir: .
outdir: _build/html

# Parent of per-project output dirs, relative to srcdir.
autodox_outdir: _doxygen
autodox_doxygen_exe: doxygen

autodox_projects:
  # Shorthand: the value is the project source dir, which holds a Doxyfile.
  core: ../core
  utils:
    srcdir: ../utils
    doxyfile: Doxyfile
    # Keep the project's own HTML settings.
    conforming: false
    tagfiles:
      - [_doxygen/core/html/tagfile.xml, _doxygen/core/html]
`

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	// #nosec G306 -- configuration file is not secret
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
