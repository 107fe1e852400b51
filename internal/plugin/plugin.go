// Package plugin provides the catalogue of presentation plugins a book is built with.
// Plugins declare their metadata and assets, and install handlers into a hook registry.
package plugin

import (
	"fmt"
	"io/fs"

	"git.home.luguber.info/inful/bookhooks/internal/hooks"
)

// Plugin represents a presentation plugin with metadata, assets and hook handlers.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, type, namespace).
	Metadata() Metadata

	// Assets returns the static files the host copies into the output.
	Assets() AssetSpec

	// Install registers the plugin's handlers. It is called exactly once,
	// before the hook registry is sealed.
	Install(r *hooks.Registry) error
}

// Metadata describes a plugin's identity.
type Metadata struct {
	// Name is the unique plugin identifier (e.g., "ancre-navigation").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Type identifies what the plugin decorates.
	Type PluginType

	// Description provides a human-readable summary of the plugin's purpose.
	Description string

	// Namespace is the pluginsConfig section the plugin reads. Defaults to Name.
	Namespace string
}

// ConfigNamespace returns the configuration namespace of the plugin.
func (m Metadata) ConfigNamespace() string {
	if m.Namespace != "" {
		return m.Namespace
	}
	return m.Name
}

// String returns a human-readable representation of the plugin metadata.
func (m Metadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m Metadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}

// AssetSpec lists the static files of a plugin, relative to FS.
type AssetSpec struct {
	FS  fs.FS
	CSS []string
	JS  []string
}

// Files returns every declared asset path, stylesheets first.
func (a AssetSpec) Files() []string {
	out := make([]string, 0, len(a.CSS)+len(a.JS))
	out = append(out, a.CSS...)
	return append(out, a.JS...)
}

// Validate checks that every declared asset exists in FS.
func (a AssetSpec) Validate() error {
	files := a.Files()
	if len(files) == 0 {
		return nil
	}
	if a.FS == nil {
		return fmt.Errorf("assets declared without a filesystem")
	}
	for _, name := range files {
		if !fs.ValidPath(name) {
			return fmt.Errorf("invalid asset path %q", name)
		}
		if _, err := fs.Stat(a.FS, name); err != nil {
			return fmt.Errorf("asset %s: %w", name, err)
		}
	}
	return nil
}
