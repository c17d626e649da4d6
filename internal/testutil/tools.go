package testutil

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/autodox/internal/process"
	"git.home.luguber.info/inful/autodox/internal/process/processtest"
)

// DefaultsTemplate is what the fake doxygen prints for "-s -g -".
const DefaultsTemplate = `PROJECT_NAME           = "My Project"
OUTPUT_DIRECTORY       =
HTML_OUTPUT            = html
GENERATE_HTML          = YES
GENERATE_TREEVIEW      = NO
SEARCHENGINE           = YES
TAGFILES               =
GENERATE_TAGFILE       =
`

// Tools scripts the external tools of an autodox run.
type Tools struct {
	// Overrides maps a Doxyfile path to what "-x_noenv" prints for it.
	// Unknown paths print nothing.
	Overrides map[string]string

	// Fail makes the first invocation whose executable base name and first
	// argument match exit with status 1. An empty FailArg matches any
	// invocation of FailTool.
	FailTool string
	FailArg  string
}

// Handler answers invocations of doxygen and doxysphinx.
func (tools *Tools) Handler() processtest.Handler {
	failed := false
	return func(cmd process.Command) (process.Result, error) {
		tool := filepath.Base(cmd.Name)
		if !failed && tools.FailTool != "" && tool == tools.FailTool &&
			(tools.FailArg == "" || (len(cmd.Args) > 0 && cmd.Args[0] == tools.FailArg)) {
			failed = true
			return processtest.Exit(cmd, 1, tool+": scripted failure")
		}

		if len(cmd.Args) > 0 {
			switch cmd.Args[0] {
			case "-s":
				return process.Result{Stdout: []byte(DefaultsTemplate)}, nil
			case "-x_noenv":
				out := ""
				if len(cmd.Args) > 1 {
					out = tools.Overrides[cmd.Args[1]]
				}
				return process.Result{Stdout: []byte(out)}, nil
			}
		}
		return process.Result{}, nil
	}
}

// IsDryRun reports whether cmd is one of doxygen's configuration dumps.
func IsDryRun(cmd process.Command) bool {
	return len(cmd.Args) > 0 && (cmd.Args[0] == "-s" || strings.HasPrefix(cmd.Args[0], "-x"))
}
