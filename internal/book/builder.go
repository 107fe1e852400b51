package book

import (
	"bytes"
	"context"
	stderrors "errors"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/foundation/errors"
	"git.home.luguber.info/inful/bookhooks/internal/hooks"
	"git.home.luguber.info/inful/bookhooks/internal/logfields"
	"git.home.luguber.info/inful/bookhooks/internal/metrics"
	"git.home.luguber.info/inful/bookhooks/internal/nav"
	"git.home.luguber.info/inful/bookhooks/internal/plugin"
	"git.home.luguber.info/inful/bookhooks/internal/version"
)

// AssetsDir is the output directory plugin assets are copied under.
const AssetsDir = "gitbook"

// Footer is the text of the last panel entry of every generated book.
const Footer = "Published with bookhooks"

// Result summarizes one build.
type Result struct {
	BuildID   string
	OutputDir string
	Pages     int
	// Skipped lists page sources dropped after a handler failure with KeepGoing.
	Skipped  []string
	Duration time.Duration
	// Config is the configuration the session resolved.
	Config config.ResolvedConfig
}

// Options configures a Builder.
type Options struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder
	// Env holds configuration overrides applied after the manifest.
	Env config.RawConfig
	// KeepGoing logs a failing page handler and skips the page instead of
	// aborting the build.
	KeepGoing bool
}

// Builder runs build sessions for a fixed set of plugins.
type Builder struct {
	plugins  *plugin.Registry
	hooks    *hooks.Registry
	renderer *Renderer
	opts     Options
}

// NewBuilder installs every plugin into a fresh hook registry. The registry is
// sealed and shared by every session the builder runs.
func NewBuilder(plugins *plugin.Registry, opts Options) (*Builder, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	hr := hooks.NewRegistry()
	if err := plugins.InstallAll(hr); err != nil {
		return nil, errors.WrapError(err, errors.CategoryHook, "plugin installation failed").Fatal().Build()
	}
	return &Builder{plugins: plugins, hooks: hr, renderer: NewRenderer(), opts: opts}, nil
}

// Build runs one session over b and writes the site to outDir.
func (bd *Builder) Build(ctx context.Context, b *Book, outDir string) (*Result, error) {
	start := time.Now()
	res, err := bd.build(ctx, b, outDir)
	res.Duration = time.Since(start)

	rec := bd.opts.Recorder
	rec.ObserveBuildDuration(res.Duration)
	rec.AddPages(res.Pages)
	switch {
	case err != nil && stderrors.Is(err, context.Canceled):
		rec.IncBuildOutcome(metrics.BuildOutcomeCanceled)
	case err != nil:
		rec.IncBuildOutcome(metrics.BuildOutcomeFailed)
	case len(res.Skipped) > 0:
		rec.IncBuildOutcome(metrics.BuildOutcomeWarning)
	default:
		rec.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	}
	return res, err
}

func (bd *Builder) build(ctx context.Context, b *Book, outDir string) (*Result, error) {
	s := hooks.NewSession(bd.plugins.Namespaces(), bd.opts.Logger).WithRecorder(bd.opts.Recorder)
	log := s.Logger()
	res := &Result{BuildID: s.ID(), OutputDir: outDir}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	log.Info("Build started", logfields.Path(b.Dir), logfields.Output(outDir), logfields.Pages(len(b.Pages)))

	if _, err := bd.hooks.Dispatch(s, hooks.InitPayload{Manifest: b.Manifest, Env: bd.opts.Env}); err != nil {
		return res, err
	}
	res.Config = s.Config()

	panel := nav.Build(b.Entries(), Footer)
	global := map[string]any{}
	if b.Manifest != nil {
		global = b.Manifest.Global()
	}
	if _, err := bd.hooks.Dispatch(s, hooks.StartPayload{Global: global, Panel: panel}); err != nil {
		return res, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, errors.WrapError(err, errors.CategoryFileSystem, "cannot create output directory").
			WithContext("path", outDir).Build()
	}
	stylesheets, err := bd.writeAssets(outDir)
	if err != nil {
		return res, err
	}

	for _, sp := range b.Pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		err := bd.buildPage(ctx, s, b, sp, panel, stylesheets, outDir)
		if err == nil {
			res.Pages++
			continue
		}
		if bd.opts.KeepGoing && errors.HasCategory(err, errors.CategoryHook) {
			log.Warn("Skipping page after handler failure", logfields.Page(sp.Source), logfields.Error(err))
			res.Skipped = append(res.Skipped, sp.Source)
			continue
		}
		return res, err
	}

	log.Info("Build finished", logfields.Pages(res.Pages), slog.Int("skipped", len(res.Skipped)))
	return res, nil
}

func (bd *Builder) buildPage(ctx context.Context, s *hooks.Session, b *Book, sp SourcePage, panel *nav.Panel, stylesheets []string, outDir string) error {
	content, err := bd.renderer.Render(ctx, sp.Body)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "markdown rendering failed").
			WithContext("page", sp.Source).Build()
	}

	page, err := bd.hooks.DispatchPage(s, hooks.Page{Path: sp.Source, Title: sp.Title, Content: content})
	if err != nil {
		return err
	}
	if _, err := bd.hooks.Dispatch(s, hooks.NavigationPayload{Panel: panel, PagePath: sp.Source}); err != nil {
		return err
	}

	root := rootPrefix(sp.Output)
	var buf bytes.Buffer
	err = renderPage(&buf, pageView{
		Language:    b.Language(),
		Version:     version.Version,
		Title:       sp.Title,
		BookTitle:   b.Title(),
		Root:        root,
		Source:      sp.Source,
		Stylesheets: stylesheets,
		Panel:       template.HTML(panel.String()), //nolint:gosec // rendered panel DOM
		Content:     template.HTML(page.Content),   //nolint:gosec // goldmark output, raw HTML disabled
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "page layout failed").
			WithContext("page", sp.Source).Build()
	}

	target := filepath.Join(outDir, filepath.FromSlash(sp.Output))
	if err := writeFile(target, buf.Bytes()); err != nil {
		return err
	}
	s.Logger().Debug("Page written", logfields.Page(sp.Source), logfields.Path(target))
	return nil
}

// writeAssets copies the host stylesheet and every plugin asset into outDir
// and returns the stylesheets to link, relative to the site root.
func (bd *Builder) writeAssets(outDir string) ([]string, error) {
	hostCSS, err := fs.ReadFile(layoutFS, "layout/style.css")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "host stylesheet missing").Build()
	}
	if err := writeFile(filepath.Join(outDir, filepath.FromSlash(HostStylesheet)), hostCSS); err != nil {
		return nil, err
	}
	stylesheets := []string{HostStylesheet}

	for _, p := range bd.plugins.List() {
		name := p.Metadata().Name
		assets := p.Assets()
		for _, file := range assets.Files() {
			data, err := fs.ReadFile(assets.FS, file)
			if err != nil {
				return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot read plugin asset").
					WithContext("plugin", name).
					WithContext("path", file).Build()
			}
			rel := path.Join(AssetsDir, name, file)
			if err := writeFile(filepath.Join(outDir, filepath.FromSlash(rel)), data); err != nil {
				return nil, err
			}
		}
		for _, css := range assets.CSS {
			stylesheets = append(stylesheets, path.Join(AssetsDir, name, css))
		}
	}
	return stylesheets, nil
}

func writeFile(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot create output directory").
			WithContext("path", filepath.Dir(target)).Build()
	}
	if err := os.WriteFile(target, data, 0o644); err != nil { //nolint:gosec // public HTML output, non-sensitive
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write output file").
			WithContext("path", target).Build()
	}
	return nil
}
