package commands

import (
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/relnotes/internal/build"
)

// APIDocsCmd implements the 'apidocs' command.
type APIDocsCmd struct{}

func (a *APIDocsCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	res, err := build.NewAPIDocsService(afero.NewOsFs()).
		WithLogger(logger(g)).
		Run(ctx, build.Request{Config: cfg})
	printSummary(res)
	return err
}
