package sidebar

import (
	"embed"
	"io/fs"

	"git.home.luguber.info/inful/bookhooks/internal/hooks"
	"git.home.luguber.info/inful/bookhooks/internal/logfields"
	"git.home.luguber.info/inful/bookhooks/internal/nav"
	"git.home.luguber.info/inful/bookhooks/internal/plugin"
)

// Name is the plugin name and its configuration namespace.
const Name = "sidebar-style"

//go:embed assets
var assets embed.FS

// Plugin is the sidebar-style panel plugin.
type Plugin struct{}

// New returns the sidebar-style plugin.
func New() *Plugin { return &Plugin{} }

func (*Plugin) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Name:        Name,
		Version:     "v1.0.3",
		Type:        plugin.PluginTypePanel,
		Description: "Book title header and author credit in the navigation panel",
	}
}

func (*Plugin) Assets() plugin.AssetSpec {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return plugin.AssetSpec{FS: sub, CSS: []string{"style/plugin.css"}}
}

func (*Plugin) Install(r *hooks.Registry) error {
	if err := r.OnInit(Name, func(s *hooks.Session, p hooks.InitPayload) error {
		s.LoadConfig(p)
		return nil
	}); err != nil {
		return err
	}
	if err := r.OnStart(Name, func(s *hooks.Session, p hooks.StartPayload) error {
		annotate(s, p.Panel, "")
		return nil
	}); err != nil {
		return err
	}
	return r.OnNavigationChange(Name, func(s *hooks.Session, p hooks.NavigationPayload) error {
		annotate(s, p.Panel, p.PagePath)
		return nil
	})
}

func annotate(s *hooks.Session, panel *nav.Panel, pagePath string) {
	cfg := s.Config()
	changed := Annotate(cfg, panel)
	if changed && cfg.PrintLog {
		s.Diagnostics(Name).Log("INFO sidebar-style: inserted header " + cfg.Title)
	}
	if changed {
		s.Logger().Debug("Sidebar header inserted", logfields.Plugin(Name), logfields.Page(pagePath))
	}
}
