package sidebar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/nav"
)

func samplePanel() *nav.Panel {
	return nav.Build([]nav.Entry{
		{Title: "Introduction", Path: "index.html", Level: "1"},
		{Title: "Setup", Path: "setup.html", Level: "2"},
	}, "Published with bookhooks")
}

func resolved(raw config.RawConfig) config.ResolvedConfig {
	cfg, _ := config.ResolveWithWarnings(raw)
	return cfg
}

func TestAnnotate_TitleAndAuthor(t *testing.T) {
	panel := samplePanel()
	cfg := resolved(config.RawConfig{"title": "Guide", "author": "Ann"})

	require.True(t, Annotate(cfg, panel))
	assert.Equal(t, nav.HeaderPresent, panel.HeaderState())
	assert.Contains(t, panel.String(), `<div class="sidebar-header"><h1 class="title">Guide</h1></div>`)
	assert.True(t, strings.HasPrefix(panel.String(), `<div class="book-summary"><div class="sidebar-header">`))
	assert.Equal(t, "作者：Ann", panel.LastEntryText())

	before := panel.String()
	assert.False(t, Annotate(cfg, panel))
	assert.Equal(t, before, panel.String())
	assert.Equal(t, 1, panel.CountHeaders())
}

func TestAnnotate_EmptyConfig(t *testing.T) {
	panel := samplePanel()
	before := panel.String()

	for range 3 {
		assert.False(t, Annotate(resolved(nil), panel))
	}
	assert.Equal(t, nav.HeaderAbsent, panel.HeaderState())
	assert.Equal(t, before, panel.String())
}

func TestAnnotate_TitleOnlyClearsLastEntry(t *testing.T) {
	panel := samplePanel()
	require.True(t, Annotate(resolved(config.RawConfig{"title": "Guide"}), panel))

	assert.Contains(t, panel.String(), `<h1 class="title">Guide</h1>`)
	assert.Empty(t, panel.LastEntryText())
	assert.NotContains(t, panel.String(), "Published with bookhooks")
	assert.Contains(t, panel.String(), "<li></li>")
}

func TestAnnotate_AuthorWithoutTitleDoesNothing(t *testing.T) {
	panel := samplePanel()
	before := panel.String()
	assert.False(t, Annotate(resolved(config.RawConfig{"author": "Ann"}), panel))
	assert.Equal(t, before, panel.String())
}

func TestAnnotate_CustomAuthorLabel(t *testing.T) {
	panel := samplePanel()
	cfg := resolved(config.RawConfig{"title": "Guide", "author": "Ann", "authorLabel": "By "})
	require.True(t, Annotate(cfg, panel))
	assert.Equal(t, "By Ann", panel.LastEntryText())
}

func TestAnnotate_ExistingHeaderIsRespected(t *testing.T) {
	panel, err := nav.Parse(strings.NewReader(
		`<div class="book-summary"><div class="sidebar-header"><h1 class="title">Old</h1></div>` +
			`<nav><ul class="summary"><li>keep me</li></ul></nav></div>`))
	require.NoError(t, err)

	assert.False(t, Annotate(resolved(config.RawConfig{"title": "New", "author": "Ann"}), panel))
	assert.Equal(t, "keep me", panel.LastEntryText())
	assert.NotContains(t, panel.String(), "New")
}

func TestAnnotate_InvalidPanel(t *testing.T) {
	cfg := resolved(config.RawConfig{"title": "Guide"})
	assert.False(t, Annotate(cfg, nil))

	panel, err := nav.Parse(strings.NewReader(`<div class="other"></div>`))
	require.NoError(t, err)
	assert.False(t, Annotate(cfg, panel))
}

func TestAnnotate_TitleIsEscaped(t *testing.T) {
	panel := samplePanel()
	require.True(t, Annotate(resolved(config.RawConfig{"title": "<script>x</script>"}), panel))
	assert.Contains(t, panel.String(), "&lt;script&gt;x&lt;/script&gt;")
}
