// Package builtin assembles the plugins every book is built with.
package builtin

import (
	"git.home.luguber.info/inful/bookhooks/internal/anchor"
	"git.home.luguber.info/inful/bookhooks/internal/plugin"
	"git.home.luguber.info/inful/bookhooks/internal/sidebar"
)

// Plugins returns the built-in plugins in installation order.
func Plugins() []plugin.Plugin {
	return []plugin.Plugin{anchor.New(), sidebar.New()}
}

// Registry returns a plugin registry holding the built-in plugins.
func Registry() (*plugin.Registry, error) {
	r := plugin.NewRegistry()
	for _, p := range Plugins() {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}
