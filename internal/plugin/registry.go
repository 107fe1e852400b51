package plugin

import (
	"fmt"
	"sync"

	"git.home.luguber.info/inful/bookhooks/internal/hooks"
)

// Registry keeps plugins in registration order. The order is the order their
// handlers run in and the order their configuration namespaces are merged.
type Registry struct {
	mu        sync.RWMutex
	order     []Plugin
	byName    map[string]Plugin
	installed bool
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name already exists.
func (r *Registry) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := plugin.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}
	if err := plugin.Assets().Validate(); err != nil {
		return NewPluginError(metadata.Name, "register", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.installed {
		return fmt.Errorf("plugin %s registered after installation", metadata.Name)
	}
	if existing, exists := r.byName[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered as %s", metadata.Name, existing.Metadata())
	}

	r.byName[metadata.Name] = plugin
	r.order = append(r.order, plugin)
	return nil
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugin, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	return plugin, nil
}

// Has checks if a plugin with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok
}

// List returns all registered plugins in registration order.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Plugin(nil), r.order...)
}

// ListByType returns all plugins of a specific type, in registration order.
func (r *Registry) ListByType(pluginType PluginType) []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Plugin
	for _, plugin := range r.order {
		if plugin.Metadata().Type == pluginType {
			result = append(result, plugin)
		}
	}
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Namespaces returns the configuration namespaces in registration order,
// without duplicates.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(r.order))
	out := make([]string, 0, len(r.order))
	for _, plugin := range r.order {
		ns := plugin.Metadata().ConfigNamespace()
		if seen[ns] {
			continue
		}
		seen[ns] = true
		out = append(out, ns)
	}
	return out
}

// InstallAll installs every plugin into hr in registration order and seals hr.
// The plugin registry accepts no further plugins afterwards.
func (r *Registry) InstallAll(hr *hooks.Registry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, plugin := range r.order {
		if err := plugin.Install(hr); err != nil {
			return NewPluginError(plugin.Metadata().Name, "install", err)
		}
	}
	r.installed = true
	hr.Seal()
	return nil
}
