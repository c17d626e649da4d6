// Package autodox generates Doxygen HTML for the projects configured on a
// site and embeds it with doxysphinx.
//
// The Extension declares the autodox_* config values on a plugin.Application
// and runs the Orchestrator when the builder is initialized. Projects are
// processed one at a time in configuration order; the first failure stops
// the run.
package autodox
