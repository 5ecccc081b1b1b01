package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/relnotes/internal/config"
	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
)

// Global carries state set up once for every command.
type Global struct {
	Logger *slog.Logger
	level  *slog.LevelVar
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"relnotes.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Releases ReleasesCmd `cmd:"" help:"Generate release-note pages from the configured document source"`
	APIDocs  APIDocsCmd  `cmd:"" name:"apidocs" help:"Mirror API descriptions and render their introduction and changelog pages"`
	Sync     SyncCmd     `cmd:"" help:"Run apidocs, then releases"`
	Scaffold ScaffoldCmd `cmd:"" help:"Create placeholder pages for navigation entries without a file"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Daemon   DaemonCmd   `cmd:"" help:"Regenerate pages on an interval and when the configuration changes"`
	Info     VersionCmd  `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	g.level = new(slog.LevelVar)
	if c.Verbose {
		g.level.Set(slog.LevelDebug)
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: g.level}))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig loads root.Config and applies its log level unless --verbose was given.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load configuration").
			WithContext("path", root.Config).
			Build()
	}
	if !root.Verbose && g.level != nil {
		g.level.Set(cfg.Logging.Level.SlogLevel())
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func logger(g *Global) *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
