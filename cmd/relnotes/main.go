package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/relnotes/cmd/relnotes/commands"
	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
	"git.home.luguber.info/inful/relnotes/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{}
	ctx := kong.Parse(&cli,
		kong.Name("relnotes"),
		kong.Description("Generate Mintlify release notes and API documentation pages."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := ctx.Run(global, &cli)
	logger := global.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ferrors.NewCLIErrorAdapter(cli.Verbose, logger).HandleError(err)
}
