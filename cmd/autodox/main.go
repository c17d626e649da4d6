package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/autodox/cmd/autodox/commands"
	derrors "git.home.luguber.info/inful/autodox/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli commands.CLI
	global := &commands.Global{Context: ctx}
	kctx := kong.Parse(&cli,
		kong.Name("autodox"),
		kong.Description("Generate Doxygen documentation and embed it with doxysphinx."),
		kong.UsageOnError(),
		kong.Bind(global),
	)

	err := kctx.Run(global, &cli)
	stop()
	derrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
}
