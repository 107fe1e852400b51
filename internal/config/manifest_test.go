package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookhooks/internal/foundation/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadManifest_Missing(t *testing.T) {
	m, err := LoadManifest(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, m.Path)
	assert.Nil(t, m.Section("sidebar-style"))
}

func TestLoadManifest_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "book.json", `{
  "title": "Handbook",
  "plugins": ["ancre-navigation", "sidebar-style"],
  "pluginsConfig": {
    "sidebar-style": {"title": "Guide", "author": "Ann"},
    "ancre-navigation": {"printLog": true}
  },
  "gitbook": "3.x"
}`)

	m, err := LoadManifest(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "book.json"), m.Path)
	assert.Equal(t, "Handbook", m.Title)
	assert.Equal(t, []string{"ancre-navigation", "sidebar-style"}, m.Plugins)
	assert.Equal(t, "Guide", m.Section("sidebar-style")[KeyTitle])
	assert.Equal(t, true, m.Section("ancre-navigation")[KeyPrintLog])
	assert.Equal(t, "3.x", m.Extra["gitbook"])
	assert.Empty(t, m.Warnings)
}

func TestLoadManifest_TOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "book.toml", `
title = "Handbook"

[pluginsConfig.sidebar-style]
title = "Guide"

[pluginsConfig.ancre-navigation]
anchors = true
maxLevel = 2
`)

	m, err := LoadManifest(dir)
	require.NoError(t, err)

	cfg := Resolve(Collect(m, []string{"ancre-navigation", "sidebar-style"}, nil), nil)
	assert.Equal(t, "Guide", cfg.Title)
	assert.True(t, cfg.Anchors)
	assert.Equal(t, 2, cfg.MaxLevel)
}

func TestLoadManifest_PrefersJSONOverYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "book.yaml", "title: from-yaml\n")
	writeFile(t, dir, "book.json", `{"title": "from-json"}`)

	m, err := LoadManifest(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-json", m.Title)
}

func TestLoadManifest_InvalidIsConfigError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "book.yaml", "title: [unclosed\n")

	_, err := LoadManifest(dir)

	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestParseManifest_ShapeWarnings(t *testing.T) {
	m, err := ParseManifest([]byte(`
title: 12
pluginsConfig:
  sidebar-style: "not a table"
  ancre-navigation:
`), FormatYAML)

	require.NoError(t, err)
	assert.Len(t, m.Warnings, 2)
	assert.Nil(t, m.Section("sidebar-style"))
	assert.Nil(t, m.Section("ancre-navigation"))
}

func TestManifest_Global(t *testing.T) {
	m, err := ParseManifest([]byte(`
title: Handbook
pluginsConfig:
  sidebar-style:
    title: Guide
links:
  home: https://example.org
`), FormatYAML)
	require.NoError(t, err)

	global := m.Global()

	assert.Equal(t, "Handbook", global["title"])
	assert.Equal(t, map[string]any{"title": "Guide"}, global["sidebar-style"])
	assert.Contains(t, global, "links")
}
