package commands

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/plugin/builtin"
)

// ConfigCmd implements the 'config' command.
type ConfigCmd struct {
	Dir string `arg:"" optional:"" default:"." help:"Book directory"`
}

func (c *ConfigCmd) Run(g *Global, _ *CLI) error {
	cfg, warnings, err := ResolveBookConfig(g, c.Dir)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(g.out(), "# %s\n", w)
	}
	_, err = g.out().Write(out)
	return err
}

// ResolveBookConfig merges and resolves the plugin configuration of the book
// in dir exactly as a build would, and returns the coercion warnings.
func ResolveBookConfig(g *Global, dir string) (config.ResolvedConfig, []string, error) {
	if _, err := config.LoadDotEnv(dir); err != nil {
		g.logger().Warn("Ignoring unreadable .env file", "error", err)
	}
	m, err := config.LoadManifest(dir)
	if err != nil {
		return config.ResolvedConfig{}, nil, err
	}
	plugins, err := builtin.Registry()
	if err != nil {
		return config.ResolvedConfig{}, nil, err
	}
	raw := config.Collect(m, plugins.Namespaces(), config.EnvOverrides(nil))
	cfg, warnings := config.ResolveWithWarnings(raw)
	return cfg, append(m.Warnings, warnings...), nil
}
