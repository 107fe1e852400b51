package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookhooks/internal/hooks"
)

// stubPlugin installs one start handler that records its name.
type stubPlugin struct {
	metadata   Metadata
	installErr error
	calls      *[]string
}

func (s *stubPlugin) Metadata() Metadata { return s.metadata }
func (s *stubPlugin) Assets() AssetSpec  { return AssetSpec{} }

func (s *stubPlugin) Install(r *hooks.Registry) error {
	if s.installErr != nil {
		return s.installErr
	}
	return r.OnStart(s.metadata.Name, func(*hooks.Session, hooks.StartPayload) error {
		if s.calls != nil {
			*s.calls = append(*s.calls, s.metadata.Name)
		}
		return nil
	})
}

func newStub(name, namespace string, pluginType PluginType) *stubPlugin {
	return &stubPlugin{metadata: Metadata{Name: name, Version: "v1.0.0", Type: pluginType, Namespace: namespace}}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()
	p := newStub("test-plugin", "", PluginTypePage)

	require.NoError(t, registry.Register(p))
	assert.True(t, registry.Has("test-plugin"))
	assert.Equal(t, 1, registry.Count())

	err := registry.Register(newStub("test-plugin", "", PluginTypePanel))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistryRegisterRejects(t *testing.T) {
	registry := NewRegistry()
	require.Error(t, registry.Register(nil))
	require.Error(t, registry.Register(&stubPlugin{metadata: Metadata{Version: "v1", Type: PluginTypePage}}))
	assert.Zero(t, registry.Count())
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()
	p := newStub("sidebar-style", "", PluginTypePanel)
	require.NoError(t, registry.Register(p))

	got, err := registry.Get("sidebar-style")
	require.NoError(t, err)
	assert.Same(t, p, got)

	_, err = registry.Get("missing")
	require.Error(t, err)
}

func TestRegistryOrderAndNamespaces(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newStub("b", "", PluginTypePanel)))
	require.NoError(t, registry.Register(newStub("a", "", PluginTypePage)))
	require.NoError(t, registry.Register(newStub("c", "a", PluginTypePage)))

	var names []string
	for _, p := range registry.List() {
		names = append(names, p.Metadata().Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
	assert.Equal(t, []string{"b", "a"}, registry.Namespaces())
	assert.Len(t, registry.ListByType(PluginTypePage), 2)
	assert.Len(t, registry.ListByType(PluginTypePanel), 1)
}

func TestRegistryInstallAll(t *testing.T) {
	registry := NewRegistry()
	var calls []string
	for _, name := range []string{"first", "second"} {
		p := newStub(name, "", PluginTypePanel)
		p.calls = &calls
		require.NoError(t, registry.Register(p))
	}

	hr := hooks.NewRegistry()
	require.NoError(t, registry.InstallAll(hr))
	assert.True(t, hr.Sealed())
	assert.Equal(t, []string{"first", "second"}, hr.Owners(hooks.EventStart))

	err := registry.Register(newStub("late", "", PluginTypePage))
	require.Error(t, err)
}

func TestRegistryInstallAllFailure(t *testing.T) {
	registry := NewRegistry()
	broken := newStub("broken", "", PluginTypePage)
	broken.installErr = errors.New("no handlers")
	require.NoError(t, registry.Register(broken))

	hr := hooks.NewRegistry()
	err := registry.InstallAll(hr)

	var pluginErr *PluginError
	require.ErrorAs(t, err, &pluginErr)
	assert.Equal(t, "broken", pluginErr.PluginName)
	assert.Equal(t, "install", pluginErr.Operation)
	assert.False(t, hr.Sealed())
}
