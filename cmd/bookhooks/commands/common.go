// Package commands implements the bookhooks command line.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookhooks/internal/book"
	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/logfields"
)

// DefaultOutputDir is the output directory used when -o is not given,
// relative to the book directory.
const DefaultOutputDir = "_book"

// Global is the state shared with every subcommand.
type Global struct {
	Context context.Context
	Logger  *slog.Logger
	// Out receives user-facing command output.
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the book into a static site"`
	Watch   WatchCmd   `cmd:"" help:"Build the book and rebuild it whenever a source changes"`
	Config  ConfigCmd  `cmd:"" help:"Print the plugin configuration a build would resolve"`
	Plugins PluginsCmd `cmd:"" help:"List the installed plugins"`
	Init    InitCmd    `cmd:"" help:"Create an example book"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func (g *Global) ctx() context.Context {
	if g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// ResolveOutputDir returns the -o flag, or _book inside the book directory.
func ResolveOutputDir(dir, cliOutput string) string {
	if cliOutput != "" {
		return cliOutput
	}
	return filepath.Join(dir, DefaultOutputDir)
}

// loadBook loads dir/.env into the environment, then the book, and returns
// the environment overrides that apply to it.
func loadBook(logger *slog.Logger, dir string) (*book.Book, config.RawConfig, error) {
	loaded, err := config.LoadDotEnv(dir)
	if err != nil {
		logger.Warn("Ignoring unreadable .env file", logfields.Path(dir), logfields.Error(err))
	} else if loaded {
		logger.Debug("Loaded .env", logfields.Path(dir))
	}
	b, err := book.Load(dir)
	if err != nil {
		return nil, nil, err
	}
	return b, config.EnvOverrides(nil), nil
}
