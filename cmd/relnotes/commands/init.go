package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/relnotes/internal/config"
	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory to write relnotes.yaml into instead of --config"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if i.Output != "" {
		return RunInit(filepath.Join(i.Output, "relnotes.yaml"), i.Force)
	}
	return RunInit(root.Config, i.Force)
}

func RunInit(configPath string, force bool) error {
	fmt.Printf("Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "initialization failed").Build()
	}
	fmt.Println("initialized successfully")
	return nil
}
