// Package build provides the canonical site build for autodox.
//
// A Service turns a loaded site configuration into a plugin.Application,
// registers the autodox extension on it and runs the build lifecycle. The
// CLI and watch mode both route through Service.
package build
