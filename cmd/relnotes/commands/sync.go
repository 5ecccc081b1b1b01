package commands

import (
	"errors"
	"time"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/relnotes/internal/build"
)

// SyncCmd runs both pipelines in the order the daemon uses: API descriptions
// first, so release notes link against fresh copies.
type SyncCmd struct {
	Now time.Time `help:"Date the archive partition is computed from (YYYY-MM-DD)" format:"2006-01-02"`
}

func (s *SyncCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fs := afero.NewOsFs()
	apiRes, apiErr := build.NewAPIDocsService(fs).
		WithLogger(logger(g)).
		Run(ctx, build.Request{Config: cfg})
	printSummary(apiRes)
	if ctx.Err() != nil {
		return apiErr
	}

	relRes, relErr := build.NewReleaseNotesService(fs).
		WithLogger(logger(g)).
		Run(ctx, build.Request{Config: cfg, Now: s.Now})
	printSummary(relRes)
	return errors.Join(apiErr, relErr)
}
