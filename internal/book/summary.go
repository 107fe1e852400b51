package book

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/bookhooks/internal/nav"
)

// SummaryFile is the table of contents of a book.
const SummaryFile = "SUMMARY.md"

// Chapter is one line of the table of contents.
type Chapter struct {
	Title string
	// Source is the markdown path relative to the book root; empty for labels
	// and external links.
	Source string
	// Link is the raw destination written in SUMMARY.md.
	Link  string
	Level string
	Depth int
}

// ParseSummary reads the nested lists of a SUMMARY.md document. Every list
// item becomes a chapter; its first link gives the target.
func ParseSummary(src []byte) []Chapter {
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var (
		out      []Chapter
		counters []int
	)
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		item, ok := n.(*ast.ListItem)
		if !ok {
			return ast.WalkContinue, nil
		}

		depth := listDepth(item)
		for len(counters) < depth+1 {
			counters = append(counters, 0)
		}
		counters = counters[:depth+1]
		counters[depth]++

		title, dest := itemLabel(item, src)
		if title == "" && dest == "" {
			return ast.WalkContinue, nil
		}
		ch := Chapter{Title: title, Link: dest, Level: nav.LevelString(counters), Depth: depth}
		if isLocalMarkdown(dest) {
			ch.Source = strings.TrimPrefix(strings.SplitN(dest, "#", 2)[0], "./")
		}
		out = append(out, ch)
		return ast.WalkContinue, nil
	})
	return out
}

func listDepth(n ast.Node) int {
	depth := -1
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindList {
			depth++
		}
	}
	return max(depth, 0)
}

// itemLabel returns the text and destination of the item's first link, or the
// item's own text when it has no link. Nested lists are not part of the label.
func itemLabel(item *ast.ListItem, src []byte) (string, string) {
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == ast.KindList {
			continue
		}
		var link *ast.Link
		_ = ast.Walk(c, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if l, ok := n.(*ast.Link); ok && entering {
				link = l
				return ast.WalkStop, nil
			}
			return ast.WalkContinue, nil
		})
		if link != nil {
			return plainText(link, src), string(link.Destination)
		}
		if label := plainText(c, src); label != "" {
			return label, ""
		}
	}
	return "", ""
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func isLocalMarkdown(dest string) bool {
	if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "#") {
		return false
	}
	target := strings.SplitN(dest, "#", 2)[0]
	return strings.HasSuffix(strings.ToLower(target), ".md")
}
