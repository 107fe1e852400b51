package anchor

import (
	"embed"
	"io/fs"

	"git.home.luguber.info/inful/bookhooks/internal/hooks"
	"git.home.luguber.info/inful/bookhooks/internal/plugin"
)

// Name is the plugin name and its configuration namespace.
const Name = "ancre-navigation"

//go:embed assets
var assets embed.FS

// Plugin is the ancre-navigation page plugin.
type Plugin struct{}

// New returns the ancre-navigation plugin.
func New() *Plugin { return &Plugin{} }

func (*Plugin) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Name:        Name,
		Version:     "v1.2.0",
		Type:        plugin.PluginTypePage,
		Description: "Heading anchors, in-page navigation and a back-to-top link",
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
	if err := r.OnInit(Name, onInit); err != nil {
		return err
	}
	return r.OnPage(Name, onPage)
}

func onInit(s *hooks.Session, p hooks.InitPayload) error {
	s.LoadConfig(p)
	return nil
}

func onPage(s *hooks.Session, page hooks.Page) (hooks.Page, error) {
	return Annotate(s.Config(), page, s.Diagnostics(Name)), nil
}
