package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/foundation/errors"
)

// run parses args like the real binary and runs the selected command.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("bookhooks"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	g := &Global{
		Context: context.Background(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Out:     &out,
	}
	err = kctx.Run(g, &cli)
	return out.String(), err
}

func TestInitThenBuild(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "book")

	out, err := run(t, "init", dir, "--title", "Field Guide")
	require.NoError(t, err)
	assert.Contains(t, out, "book.yaml")

	out, err = run(t, "build", dir, "--metrics-file", filepath.Join(dir, "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, out, "Built 1 pages")

	index, err := os.ReadFile(filepath.Join(dir, DefaultOutputDir, "index.html"))
	require.NoError(t, err)
	html := string(index)
	assert.Contains(t, html, `<h1 class="title">Field Guide</h1>`)
	assert.Contains(t, html, "作者：Your Name")
	assert.Contains(t, html, `<nav class="anchor-navigation">`)
	assert.Contains(t, html, `<h2 id="next-steps">`)

	prom, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `bookhooks_build_outcomes_total{outcome="success"} 1`)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "init", dir)
	require.NoError(t, err)

	_, err = run(t, "init", dir)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryValidation, errors.GetCategory(err))

	_, err = run(t, "init", dir, "--force")
	require.NoError(t, err)
}

func TestConfig_PrintsResolvedYAML(t *testing.T) {
	dir := t.TempDir()
	manifest := "pluginsConfig:\n  sidebar-style:\n    title: Guide\n    author: 42\n  ancre-navigation:\n    printLog: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.yaml"), []byte(manifest), 0o600))

	out, err := run(t, "config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `# config: "author" expects`)

	var cfg config.ResolvedConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "Guide", cfg.Title)
	assert.Empty(t, cfg.Author)
	assert.True(t, cfg.PrintLog)
	assert.Equal(t, 3, cfg.MaxLevel)
}

func TestConfig_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOOKHOOKS_TITLE", "From Env")

	out, err := run(t, "config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "title: From Env")
}

func TestPlugins_ListsBuiltins(t *testing.T) {
	out, err := run(t, "plugins")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "ancre-navigation"))
	assert.True(t, strings.HasPrefix(lines[2], "sidebar-style"))
	assert.Contains(t, lines[2], "style/plugin.css")
}

func TestBuild_MissingBook(t *testing.T) {
	_, err := run(t, "build", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, 3, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestResolveOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("book", "_book"), ResolveOutputDir("book", ""))
	assert.Equal(t, "site", ResolveOutputDir("book", "site"))
}
