// Package testutil holds helpers shared by package tests: filesystem
// assertions over a temporary site tree and a scripted doxygen/doxysphinx
// handler for processtest.Runner.
package testutil
