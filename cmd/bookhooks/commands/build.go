package commands

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/bookhooks/internal/book"
	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/logfields"
	"git.home.luguber.info/inful/bookhooks/internal/metrics"
	"git.home.luguber.info/inful/bookhooks/internal/plugin/builtin"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Dir         string `arg:"" optional:"" default:"." help:"Book directory"`
	Output      string `short:"o" help:"Output directory for the generated site (default <dir>/_book)"`
	KeepGoing   bool   `name:"keep-going" help:"Skip pages whose plugin handlers fail instead of aborting"`
	MetricsFile string `name:"metrics-file" help:"Write build metrics to this file in Prometheus textfile format"`
}

func (b *BuildCmd) Run(g *Global, _ *CLI) error {
	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	res, err := RunBuild(g, b.Dir, ResolveOutputDir(b.Dir, b.Output), book.Options{KeepGoing: b.KeepGoing, Recorder: rec})

	if b.MetricsFile != "" {
		if werr := metrics.WriteTextfile(b.MetricsFile, reg); werr != nil {
			g.logger().Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out(), "Built %d pages into %s in %s\n", res.Pages, res.OutputDir, res.Duration.Round(time.Millisecond))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(g.out(), "Skipped %d pages after plugin failures: %v\n", len(res.Skipped), res.Skipped)
	}
	return nil
}

// RunBuild loads the book in dir and builds it into outputDir with the built-in plugins.
func RunBuild(g *Global, dir, outputDir string, opts book.Options) (*book.Result, error) {
	b, env, err := loadBook(g.logger(), dir)
	if err != nil {
		return nil, err
	}
	bd, err := newBuilder(g, env, opts)
	if err != nil {
		return nil, err
	}
	return bd.Build(g.ctx(), b, outputDir)
}

func newBuilder(g *Global, env config.RawConfig, opts book.Options) (*book.Builder, error) {
	plugins, err := builtin.Registry()
	if err != nil {
		return nil, err
	}
	opts.Logger = g.logger()
	opts.Env = env
	return book.NewBuilder(plugins, opts)
}
