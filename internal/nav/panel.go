// Package nav models the persistent table-of-contents panel a book shows next
// to every page. The panel is an HTML fragment rooted at div.book-summary and
// is shared by every page of a build session.
package nav

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSS classes the panel structure is recognised by.
const (
	ClassSummary       = "book-summary"
	ClassSummaryList   = "summary"
	ClassSidebarHead   = "sidebar-header"
	ClassChapter       = "chapter"
	ClassDivider       = "divider"
	ClassPublishedWith = "published-with"
)

// HeaderState is the state of the panel's header slot.
type HeaderState int

const (
	HeaderAbsent HeaderState = iota
	HeaderPresent
)

func (s HeaderState) String() string {
	if s == HeaderPresent {
		return "present"
	}
	return "absent"
}

// Entry is one chapter line of the panel.
type Entry struct {
	Title string
	Path  string // output-relative link target; empty for section labels
	Level string // dotted chapter number such as "1.2"
	Depth int    // 0 for top-level chapters
}

// Panel is the parsed navigation panel.
type Panel struct {
	summary *html.Node
}

// Build creates a panel listing entries, followed by the footer line every
// generated book carries.
func Build(entries []Entry, footer string) *Panel {
	summary := element(atom.Div, "class", ClassSummary)
	navEl := element(atom.Nav, "role", "navigation")
	summary.AppendChild(navEl)
	root := element(atom.Ul, "class", ClassSummaryList)
	navEl.AppendChild(root)

	// lists[d] is the <ul> receiving entries of depth d.
	lists := []*html.Node{root}
	var last *html.Node
	for _, e := range entries {
		depth := e.Depth
		if depth < 0 {
			depth = 0
		}
		if depth > len(lists)-1 {
			if last == nil {
				depth = 0
			} else {
				sub := element(atom.Ul, "class", "articles")
				last.AppendChild(sub)
				lists = append(lists, sub)
				depth = len(lists) - 1
			}
		}
		lists = lists[:depth+1]

		li := element(atom.Li, "class", ClassChapter)
		if e.Level != "" {
			li.Attr = append(li.Attr, html.Attribute{Key: "data-level", Val: e.Level})
		}
		if e.Path != "" {
			li.Attr = append(li.Attr, html.Attribute{Key: "data-path", Val: e.Path})
			a := element(atom.A, "href", e.Path)
			a.AppendChild(text(e.Title))
			li.AppendChild(a)
		} else {
			span := element(atom.Span)
			span.AppendChild(text(e.Title))
			li.AppendChild(span)
		}
		lists[depth].AppendChild(li)
		last = li
	}

	root.AppendChild(element(atom.Li, "class", ClassDivider))
	footerLi := element(atom.Li)
	footerA := element(atom.A, "class", ClassPublishedWith)
	footerA.AppendChild(text(footer))
	footerLi.AppendChild(footerA)
	root.AppendChild(footerLi)

	return &Panel{summary: summary}
}

// Parse reads a panel from HTML. The input may be a full document or a fragment;
// the first div.book-summary found becomes the panel. Input without one yields
// a panel whose operations are no-ops.
func Parse(r io.Reader) (*Panel, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse panel: %w", err)
	}
	return &Panel{summary: findFirst(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Div && hasClass(n, ClassSummary)
	})}, nil
}

// Valid reports whether the panel has a book-summary root.
func (p *Panel) Valid() bool {
	return p != nil && p.summary != nil
}

// HeaderState inspects the live panel for the sidebar header marker.
func (p *Panel) HeaderState() HeaderState {
	if !p.Valid() {
		return HeaderAbsent
	}
	if findFirst(p.summary, func(n *html.Node) bool { return hasClass(n, ClassSidebarHead) }) != nil {
		return HeaderPresent
	}
	return HeaderAbsent
}

// CountHeaders returns how many sidebar headers the panel holds.
func (p *Panel) CountHeaders() int {
	if !p.Valid() {
		return 0
	}
	count := 0
	walk(p.summary, func(n *html.Node) {
		if hasClass(n, ClassSidebarHead) {
			count++
		}
	})
	return count
}

// PrependHeader inserts <div class="sidebar-header"><h1 class="title">title</h1></div>
// as the first child of the panel.
func (p *Panel) PrependHeader(title string) bool {
	if !p.Valid() {
		return false
	}
	header := element(atom.Div, "class", ClassSidebarHead)
	h1 := element(atom.H1, "class", "title")
	h1.AppendChild(text(title))
	header.AppendChild(h1)
	p.summary.InsertBefore(header, p.summary.FirstChild)
	return true
}

// lastEntry is the last <li> in document order inside ul.summary.
func (p *Panel) lastEntry() *html.Node {
	if !p.Valid() {
		return nil
	}
	list := findFirst(p.summary, func(n *html.Node) bool {
		return n.DataAtom == atom.Ul && hasClass(n, ClassSummaryList)
	})
	if list == nil {
		return nil
	}
	var last *html.Node
	walk(list, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Li {
			last = n
		}
	})
	return last
}

// LastEntryText returns the text content of the last list entry.
func (p *Panel) LastEntryText() string {
	li := p.lastEntry()
	if li == nil {
		return ""
	}
	var b strings.Builder
	walk(li, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}

// ReplaceLastEntry overwrites the content of the last list entry with a single
// <a> holding label. Whatever the entry held before is discarded.
func (p *Panel) ReplaceLastEntry(label string) bool {
	li := p.lastEntry()
	if li == nil {
		return false
	}
	clearChildren(li)
	a := element(atom.A)
	a.AppendChild(text(label))
	li.AppendChild(a)
	return true
}

// ClearLastEntry removes all content of the last list entry.
func (p *Panel) ClearLastEntry() bool {
	li := p.lastEntry()
	if li == nil {
		return false
	}
	clearChildren(li)
	return true
}

// Render writes the panel HTML.
func (p *Panel) Render(w io.Writer) error {
	if !p.Valid() {
		return nil
	}
	return html.Render(w, p.summary)
}

// String renders the panel, returning an empty string for an invalid panel.
func (p *Panel) String() string {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// LevelString formats a chapter number path such as []int{1, 2} as "1.2".
func LevelString(path []int) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}
