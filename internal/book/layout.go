package book

import (
	"embed"
	"html/template"
	"io"
	"path"
	"strings"
)

//go:embed layout
var layoutFS embed.FS

// HostStylesheet is where the host's own stylesheet is written.
const HostStylesheet = "gitbook/style.css"

var pageTemplate = template.Must(template.ParseFS(layoutFS, "layout/page.html.tmpl"))

// pageView is the data of one generated page.
type pageView struct {
	Language    string
	Version     string
	Title       string
	BookTitle   string
	Root        string
	Source      string
	Stylesheets []string
	Panel       template.HTML
	Content     template.HTML
}

func renderPage(w io.Writer, v pageView) error {
	return pageTemplate.ExecuteTemplate(w, "page.html.tmpl", v)
}

// rootPrefix is the relative path from output back to the site root.
func rootPrefix(output string) string {
	depth := strings.Count(path.Clean(output), "/")
	if depth == 0 {
		return "./"
	}
	return strings.Repeat("../", depth)
}
