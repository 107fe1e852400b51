package sidebar

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/hooks"
)

func session(t *testing.T, r *hooks.Registry, section config.RawConfig) *hooks.Session {
	t.Helper()
	s := hooks.NewSession([]string{Name}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := &config.Manifest{PluginsConfig: map[string]config.RawConfig{Name: section}}
	_, err := r.Dispatch(s, hooks.InitPayload{Manifest: m})
	require.NoError(t, err)
	return s
}

func TestPlugin_Metadata(t *testing.T) {
	p := New()
	require.NoError(t, p.Metadata().Validate())
	require.NoError(t, p.Assets().Validate())
}

func TestPlugin_StartAndNavigationChange(t *testing.T) {
	r := hooks.NewRegistry()
	require.NoError(t, New().Install(r))
	r.Seal()
	s := session(t, r, config.RawConfig{"title": "Guide", "author": "Ann", "printLog": true})

	panel := samplePanel()
	_, err := r.Dispatch(s, hooks.StartPayload{Panel: panel})
	require.NoError(t, err)
	assert.Equal(t, 1, panel.CountHeaders())

	for _, path := range []string{"index.md", "setup.md", "index.md"} {
		_, err = r.Dispatch(s, hooks.NavigationPayload{Panel: panel, PagePath: path})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, panel.CountHeaders())
	assert.Equal(t, "作者：Ann", panel.LastEntryText())
}

func TestPlugin_NavigationWithoutStart(t *testing.T) {
	r := hooks.NewRegistry()
	require.NoError(t, New().Install(r))
	s := session(t, r, config.RawConfig{"title": "Guide"})

	panel := samplePanel()
	_, err := r.Dispatch(s, hooks.NavigationPayload{Panel: panel})
	require.NoError(t, err)
	assert.Equal(t, 1, panel.CountHeaders())
	assert.Empty(t, panel.LastEntryText())
}
