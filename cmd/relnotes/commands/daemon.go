package commands

import (
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/relnotes/internal/daemon"
)

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct{}

func (d *DaemonCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	log := logger(g)
	log.Info("Starting daemon mode")
	if err := daemon.New(root.Config, cfg, afero.NewOsFs(), log).Run(ctx); err != nil {
		return err
	}
	log.Info("Daemon stopped successfully")
	return nil
}
