package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookhooks/internal/anchor"
	"git.home.luguber.info/inful/bookhooks/internal/book"
	"git.home.luguber.info/inful/bookhooks/internal/foundation/errors"
	"git.home.luguber.info/inful/bookhooks/internal/frontmatter"
	"git.home.luguber.info/inful/bookhooks/internal/sidebar"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Dir   string `arg:"" optional:"" default:"." help:"Directory to create the book in"`
	Force bool   `help:"Overwrite existing files"`
	Title string `help:"Book title" default:"My Book"`
}

type exampleManifest struct {
	Title         string                    `yaml:"title"`
	Language      string                    `yaml:"language"`
	Plugins       []string                  `yaml:"plugins"`
	PluginsConfig map[string]map[string]any `yaml:"pluginsConfig"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	files, err := exampleBook(i.Title)
	if err != nil {
		return err
	}
	if !i.Force {
		for name := range files {
			if _, err := os.Stat(filepath.Join(i.Dir, name)); err == nil {
				return errors.ValidationError("book files already exist; use --force to overwrite").
					WithContext("path", filepath.Join(i.Dir, name)).Build()
			}
		}
	}
	if err := os.MkdirAll(i.Dir, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot create book directory").
			WithContext("path", i.Dir).Build()
	}
	for _, name := range []string{"book.yaml", book.SummaryFile, book.ReadmeFile} {
		path := filepath.Join(i.Dir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil { //nolint:gosec // book sources are not secret
			return errors.WrapError(err, errors.CategoryFileSystem, "cannot write book file").
				WithContext("path", path).Build()
		}
		fmt.Fprintf(g.out(), "Wrote %s\n", path)
	}
	return nil
}

func exampleBook(title string) (map[string][]byte, error) {
	manifest, err := yaml.Marshal(exampleManifest{
		Title:    title,
		Language: "en",
		Plugins:  []string{anchor.Name, sidebar.Name},
		PluginsConfig: map[string]map[string]any{
			anchor.Name:  {"anchors": true, "maxLevel": 3, "showGoTop": true},
			sidebar.Name: {"title": title, "author": "Your Name"},
		},
	})
	if err != nil {
		return nil, err
	}
	readme, err := frontmatter.Render(map[string]any{"title": "Introduction"},
		[]byte("# "+title+"\n\nWelcome. Edit README.md and SUMMARY.md, then run `bookhooks build`.\n\n## Next steps\n\nAdd chapters to SUMMARY.md.\n"))
	if err != nil {
		return nil, err
	}
	return map[string][]byte{
		"book.yaml":      manifest,
		book.SummaryFile: []byte("# Summary\n\n* [Introduction](README.md)\n"),
		book.ReadmeFile:  readme,
	}, nil
}
