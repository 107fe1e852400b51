// Package book is the reference host: it loads a book directory, renders its
// pages, fires the plugin lifecycle events and writes a static site.
package book

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/foundation/errors"
	"git.home.luguber.info/inful/bookhooks/internal/frontmatter"
	"git.home.luguber.info/inful/bookhooks/internal/nav"
)

// ReadmeFile is the introduction page of a book.
const ReadmeFile = "README.md"

// Book is a loaded book directory.
type Book struct {
	Dir      string
	Manifest *config.Manifest
	Chapters []Chapter
	Pages    []SourcePage
}

// SourcePage is one markdown page of the book.
type SourcePage struct {
	// Source is the slash-separated path relative to the book root.
	Source string
	// Output is the generated page path, e.g. "setup/linux.html".
	Output string
	Title  string
	Level  string
	Body   []byte
	Fields map[string]any
}

// Load reads the manifest, the table of contents and every page of the book in dir.
// Without a SUMMARY.md every markdown file becomes a chapter, README.md first.
func Load(dir string) (*Book, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotFound, "book directory not found").
			WithContext("path", dir).Build()
	}
	if !info.IsDir() {
		return nil, errors.ValidationError("book path is not a directory").WithContext("path", dir).Build()
	}

	m, err := config.LoadManifest(dir)
	if err != nil {
		return nil, err
	}
	b := &Book{Dir: dir, Manifest: m}

	summary, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	switch {
	case err == nil:
		b.Chapters = ParseSummary(summary)
	case os.IsNotExist(err):
		if b.Chapters, err = discoverChapters(dir); err != nil {
			return nil, err
		}
	default:
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot read table of contents").
			WithContext("path", filepath.Join(dir, SummaryFile)).Build()
	}

	if !hasSource(b.Chapters, ReadmeFile) {
		if _, err := os.Stat(filepath.Join(dir, ReadmeFile)); err == nil {
			b.Chapters = append([]Chapter{{Title: "Introduction", Source: ReadmeFile, Link: ReadmeFile}}, b.Chapters...)
		}
	}

	seen := map[string]bool{}
	for i := range b.Chapters {
		ch := &b.Chapters[i]
		if ch.Source == "" || seen[ch.Source] {
			continue
		}
		seen[ch.Source] = true
		page, err := loadPage(dir, *ch)
		if err != nil {
			return nil, err
		}
		ch.Title = page.Title
		b.Pages = append(b.Pages, page)
	}
	return b, nil
}

// Title is the book title from the manifest, falling back to the directory name.
func (b *Book) Title() string {
	if b.Manifest != nil && b.Manifest.Title != "" {
		return b.Manifest.Title
	}
	return filepath.Base(filepath.Clean(b.Dir))
}

// Language is the manifest language, "en" when unset.
func (b *Book) Language() string {
	if b.Manifest != nil && b.Manifest.Language != "" {
		return b.Manifest.Language
	}
	return "en"
}

// Entries converts the table of contents to panel entries.
func (b *Book) Entries() []nav.Entry {
	out := make([]nav.Entry, 0, len(b.Chapters))
	for _, ch := range b.Chapters {
		e := nav.Entry{Title: ch.Title, Level: ch.Level, Depth: ch.Depth}
		switch {
		case ch.Source != "":
			e.Path = OutputPath(ch.Source)
		case ch.Link != "":
			e.Path = ch.Link
		}
		out = append(out, e)
	}
	return out
}

func loadPage(dir string, ch Chapter) (SourcePage, error) {
	full := filepath.Join(dir, filepath.FromSlash(ch.Source))
	data, err := os.ReadFile(filepath.Clean(full))
	if err != nil {
		category := errors.CategoryFileSystem
		if os.IsNotExist(err) {
			category = errors.CategoryNotFound
		}
		return SourcePage{}, errors.WrapError(err, category, "cannot read chapter source").
			WithContext("path", full).
			WithContext("chapter", ch.Title).Build()
	}
	doc, err := frontmatter.Parse(data)
	if err != nil {
		return SourcePage{}, errors.WrapError(err, errors.CategoryValidation, "invalid page front matter").
			WithContext("path", full).Build()
	}

	title := ch.Title
	if t := doc.Title(); t != "" {
		title = t
	}
	return SourcePage{
		Source: ch.Source,
		Output: OutputPath(ch.Source),
		Title:  title,
		Level:  ch.Level,
		Body:   doc.Body,
		Fields: doc.Fields,
	}, nil
}

func discoverChapters(dir string) ([]Chapter, error) {
	var sources []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && (strings.HasPrefix(d.Name(), ".") || d.Name() == "_book" || d.Name() == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.ToLower(filepath.Ext(p)) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != SummaryFile {
			sources = append(sources, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot scan book directory").
			WithContext("path", dir).Build()
	}
	sort.Strings(sources)

	chapters := make([]Chapter, 0, len(sources))
	n := 0
	for _, src := range sources {
		if src == ReadmeFile {
			continue
		}
		n++
		chapters = append(chapters, Chapter{
			Title:  titleFromPath(src),
			Source: src,
			Link:   src,
			Level:  nav.LevelString([]int{n}),
		})
	}
	return chapters, nil
}

func hasSource(chapters []Chapter, source string) bool {
	for _, ch := range chapters {
		if ch.Source == source {
			return true
		}
	}
	return false
}

func titleFromPath(source string) string {
	name := strings.TrimSuffix(path.Base(source), path.Ext(source))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	if name == "" {
		return source
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
