package commands

import (
	"fmt"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
	"git.home.luguber.info/inful/relnotes/internal/logfields"
	"git.home.luguber.info/inful/relnotes/internal/navigation"
)

// ScaffoldCmd implements the 'scaffold' command.
type ScaffoldCmd struct{}

func (s *ScaffoldCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	fs := afero.NewOsFs()
	nav := cfg.Navigation

	pages, err := navigation.CollectPages(fs, nav.File)
	if err != nil {
		return ferrors.NavigationError("failed to read navigation").
			WithCause(err).
			WithContext("path", nav.File).
			Build()
	}
	created, err := navigation.Scaffold(fs, nav.ScaffoldRoot, pages)
	for _, file := range created {
		fmt.Printf("created %s\n", file)
	}
	if err != nil {
		return ferrors.FileSystemError("failed to scaffold pages").WithCause(err).Build()
	}
	logger(g).Info("Scaffold complete",
		logfields.Count(len(created)),
		logfields.Path(nav.ScaffoldRoot))
	return nil
}
