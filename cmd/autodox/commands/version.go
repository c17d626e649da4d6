package commands

import (
	"fmt"

	"git.home.luguber.info/inful/autodox/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (VersionCmd) Run(_ *Global, _ *CLI) error {
	fmt.Printf("autodox %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	fmt.Printf("extension %s\n", version.ExtensionVersion)
	return nil
}
