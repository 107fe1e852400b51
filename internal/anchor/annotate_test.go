package anchor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/hooks"
	"git.home.luguber.info/inful/bookhooks/internal/logging"
)

func enabled() config.ResolvedConfig {
	cfg := config.Defaults()
	cfg.Anchors = true
	return cfg
}

func page(content string) hooks.Page {
	return hooks.Page{Path: "intro.md", Title: "Intro", Content: []byte(content)}
}

func TestAnnotate_UnchangedWithoutAnchorPoints(t *testing.T) {
	inputs := []string{
		"",
		"<p>plain <b>text</b></p>",
		"<h4>too deep</h4>",
		"<p>broken <a href='x'>markup",
		"<!-- <h1>commented</h1> -->",
	}
	for _, in := range inputs {
		out := Annotate(enabled(), page(in), logging.Discard)
		assert.Equal(t, in, string(out.Content), "input %q", in)
	}
}

func TestAnnotate_DisabledLeavesContent(t *testing.T) {
	in := "<h1>Title</h1><p>x</p>"
	out := Annotate(config.Defaults(), page(in), logging.Discard)
	assert.Equal(t, in, string(out.Content))
}

func TestAnnotate_InjectsAnchors(t *testing.T) {
	in := `<h1>Getting Started</h1><p>a &amp; b</p><h2 class="x">Install</h2><h2>Install</h2>`
	out := string(Annotate(enabled(), page(in), logging.Discard).Content)

	assert.True(t, strings.HasPrefix(out, `<nav class="anchor-navigation"><ul>`))
	assert.Contains(t, out, `<li class="anchor-navigation-level-1"><a href="#getting-started">Getting Started</a></li>`)
	assert.Contains(t, out, `<li class="anchor-navigation-level-2"><a href="#install-1">Install</a></li>`)
	assert.Contains(t, out, `<h1 id="getting-started"><a class="anchor-navigation-link" href="#getting-started">#</a>Getting Started</h1>`)
	assert.Contains(t, out, `<h2 class="x" id="install"><a class="anchor-navigation-link" href="#install">#</a>Install</h2>`)
	assert.Contains(t, out, `<h2 id="install-1">`)
	assert.Contains(t, out, `<p>a &amp; b</p>`)
	assert.True(t, strings.HasSuffix(out, `<a class="anchor-navigation-top" href="#">&uarr;</a>`))
}

func TestAnnotate_KeepsExistingIDs(t *testing.T) {
	in := `<h2 id="custom">Custom</h2><h2>Custom</h2><div id="custom-1"></div>`
	headings := Headings([]byte(in), 3)
	require.Len(t, headings, 2)
	assert.Equal(t, "custom", headings[0].ID)
	assert.Equal(t, "custom-2", headings[1].ID)

	out := string(Annotate(enabled(), page(in), logging.Discard).Content)
	assert.Contains(t, out, `<h2 id="custom"><a class="anchor-navigation-link" href="#custom">#</a>Custom</h2>`)
}

func TestAnnotate_MaxLevel(t *testing.T) {
	cfg := enabled()
	cfg.MaxLevel = 1
	in := "<h1>One</h1><h2>Two</h2>"
	out := string(Annotate(cfg, page(in), logging.Discard).Content)
	assert.Contains(t, out, `<h1 id="one">`)
	assert.Contains(t, out, `<h2>Two</h2>`)
}

func TestAnnotate_ShowLevelAndGoTop(t *testing.T) {
	cfg := enabled()
	cfg.ShowLevel = true
	cfg.ShowGoTop = false
	in := "<h1>A</h1><h2>B</h2><h2>C</h2><h1>D</h1><h3>E</h3>"
	out := string(Annotate(cfg, page(in), logging.Discard).Content)

	for _, want := range []string{
		`<span class="anchor-navigation-level">1.</span> A`,
		`<span class="anchor-navigation-level">1.1.</span> B`,
		`<span class="anchor-navigation-level">1.2.</span> C`,
		`<span class="anchor-navigation-level">2.</span> D`,
		`<span class="anchor-navigation-level">2.1.</span> E`,
		`<a href="#c">1.2. C</a>`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, ClassTop)
}

func TestAnnotate_IsDeterministic(t *testing.T) {
	in := page("<h1>Hello</h1><h2>World</h2><h2>World</h2>")
	first := Annotate(enabled(), in, logging.Discard)
	second := Annotate(enabled(), in, logging.Discard)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, "<h1>Hello</h1><h2>World</h2><h2>World</h2>", string(in.Content))
}

func TestAnnotate_PrintLogNeverChangesOutput(t *testing.T) {
	for _, anchors := range []bool{false, true} {
		quiet := enabled()
		quiet.Anchors = anchors
		loud := quiet
		loud.PrintLog = true

		rec := &logging.Recorder{}
		in := page("<h1>Hello</h1><p>x</p>")
		assert.Equal(t, Annotate(quiet, in, rec).Content, Annotate(loud, in, rec).Content)
		assert.Len(t, rec.Messages(), 1)
	}
}

func TestAnnotate_DiagnosticOnlyWithPrintLog(t *testing.T) {
	rec := &logging.Recorder{}
	Annotate(enabled(), page("<h1>x</h1>"), rec)
	assert.Empty(t, rec.Messages())

	cfg := enabled()
	cfg.PrintLog = true
	Annotate(cfg, page("<p>no headings</p>"), rec)
	require.Len(t, rec.Messages(), 1)
	assert.Contains(t, rec.Messages()[0], "intro.md")
}

func TestAnnotate_PanickingSinkIsContained(t *testing.T) {
	cfg := enabled()
	cfg.PrintLog = true
	sink := logging.SinkFunc(func(string) { panic("sink down") })
	assert.NotPanics(t, func() {
		Annotate(cfg, page("<h1>x</h1>"), sink)
	})
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Getting Started":        "getting-started",
		"  Crème Brûlée!  ":      "creme-brulee",
		"API v2.0 / Overview":    "api-v2-0-overview",
		"快速开始":                   "快速开始",
		"???":                    "section",
		"Ñandú & Co.":            "nandu-co",
		"already-slugged-header": "already-slugged-header",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}
