package book

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts page markdown to the HTML fragment handed to page handlers.
// Heading ids are left to the page plugins.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM, footnotes and class-based syntax
// highlighting. Links to other markdown sources are rewritten to their output pages.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(linkRewriter{}, 100)),
		),
	)
	return &Renderer{md: md}
}

// Render converts body to HTML. Goldmark has no cancellation of its own, so
// ctx is only checked before the conversion starts.
func (r *Renderer) Render(ctx context.Context, body []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// linkRewriter points relative links to .md sources at the generated pages.
type linkRewriter struct{}

func (linkRewriter) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			link.Destination = []byte(rewriteLink(string(link.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

func rewriteLink(dest string) string {
	if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "/") ||
		strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "mailto:") {
		return dest
	}
	target, fragment, _ := strings.Cut(dest, "#")
	if path.Ext(target) != ".md" {
		return dest
	}
	out := OutputPath(target)
	if fragment != "" {
		out += "#" + fragment
	}
	return out
}

// OutputPath maps a markdown source path to its page: README.md becomes
// index.html, anything else swaps its extension.
func OutputPath(source string) string {
	dir, file := path.Split(source)
	if strings.EqualFold(file, "README.md") {
		return dir + "index.html"
	}
	return strings.TrimSuffix(source, path.Ext(source)) + ".html"
}
