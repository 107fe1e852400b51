package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookhooks/cmd/bookhooks/commands"
	"git.home.luguber.info/inful/bookhooks/internal/foundation/errors"
	"git.home.luguber.info/inful/bookhooks/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("bookhooks"),
		kong.Description("Build books with the ancre-navigation and sidebar-style presentation plugins."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	global := &commands.Global{Context: ctx, Logger: slog.Default(), Out: os.Stdout}
	err := parser.Run(global, cli)
	stop()
	if err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		os.Exit(adapter.Report(os.Stderr, err))
	}
}
