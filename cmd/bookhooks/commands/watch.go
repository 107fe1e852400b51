package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/bookhooks/internal/book"
	"git.home.luguber.info/inful/bookhooks/internal/logfields"
	"git.home.luguber.info/inful/bookhooks/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Dir       string `arg:"" optional:"" default:"." help:"Book directory"`
	Output    string `short:"o" help:"Output directory for the generated site (default <dir>/_book)"`
	KeepGoing bool   `name:"keep-going" help:"Skip pages whose plugin handlers fail instead of aborting"`
}

func (w *WatchCmd) Run(g *Global, _ *CLI) error {
	out := ResolveOutputDir(w.Dir, w.Output)
	logger := g.logger()

	_, env, err := loadBook(logger, w.Dir)
	if err != nil {
		return err
	}
	bd, err := newBuilder(g, env, book.Options{KeepGoing: w.KeepGoing})
	if err != nil {
		return err
	}

	rebuild := func(ctx context.Context) error {
		b, err := book.Load(w.Dir)
		if err != nil {
			return err
		}
		res, err := bd.Build(ctx, b, out)
		if err != nil {
			return err
		}
		logger.Info("Book rebuilt", logfields.BuildID(res.BuildID), logfields.Pages(res.Pages), logfields.Output(out))
		return nil
	}

	if err := rebuild(g.ctx()); err != nil {
		return err
	}

	watcher, err := watch.New(w.Dir, watch.Options{Ignore: []string{out}, Logger: logger})
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out(), "Watching %s; output in %s. Press Ctrl+C to stop.\n", w.Dir, out)
	return watcher.Run(g.ctx(), rebuild)
}
