package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/bookhooks/internal/plugin/builtin"
)

// PluginsCmd implements the 'plugins' command.
type PluginsCmd struct{}

func (p *PluginsCmd) Run(g *Global, _ *CLI) error {
	plugins, err := builtin.Registry()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tTYPE\tNAMESPACE\tASSETS\tDESCRIPTION")
	for _, pl := range plugins.List() {
		m := pl.Metadata()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Name, m.Version, m.Type, m.ConfigNamespace(), strings.Join(pl.Assets().Files(), ","), m.Description)
	}
	return tw.Flush()
}
