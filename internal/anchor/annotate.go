// Package anchor implements the ancre-navigation page plugin: heading anchors,
// an in-page table of contents and a back-to-top link.
package anchor

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"

	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/hooks"
	"git.home.luguber.info/inful/bookhooks/internal/logging"
)

// Classes of the markup written into annotated pages.
const (
	ClassNavigation = "anchor-navigation"
	ClassLink       = "anchor-navigation-link"
	ClassTop        = "anchor-navigation-top"
	ClassLevel      = "anchor-navigation-level"
)

// Heading is one anchor point found on a page.
type Heading struct {
	Level  int
	ID     string
	Text   string
	Number string

	hadID bool
}

type segment struct {
	raw     []byte
	heading int
}

// Annotate returns page with anchors injected. Content without anchor points,
// or any content when anchors are disabled, is returned unchanged. When
// PrintLog is set exactly one diagnostic is written to sink first.
func Annotate(cfg config.ResolvedConfig, page hooks.Page, sink logging.Sink) hooks.Page {
	if cfg.PrintLog {
		logging.Safe(sink).Log(fmt.Sprintf("INFO ancre-navigation: %s (anchors=%t, maxLevel=%d)", page.Path, cfg.Anchors, cfg.MaxLevel))
	}
	if !cfg.Anchors {
		return page
	}

	segs, headings := scan(page.Content, cfg.MaxLevel)
	if len(headings) == 0 {
		return page
	}

	var buf bytes.Buffer
	buf.Grow(len(page.Content) + 128*len(headings))
	writeNavigation(&buf, headings, cfg.ShowLevel)
	for _, seg := range segs {
		if seg.heading < 0 {
			buf.Write(seg.raw)
			continue
		}
		writeHeadingStart(&buf, seg.raw, headings[seg.heading], cfg.ShowLevel)
	}
	if cfg.ShowGoTop {
		buf.WriteString(`<a class="` + ClassTop + `" href="#">&uarr;</a>`)
	}

	page.Content = buf.Bytes()
	return page
}

// Headings lists the anchor points of content up to maxLevel, with the ids
// and numbers Annotate would give them.
func Headings(content []byte, maxLevel int) []Heading {
	_, headings := scan(content, maxLevel)
	return headings
}

// scan splits content into raw token segments and collects its headings.
func scan(content []byte, maxLevel int) ([]segment, []Heading) {
	z := xhtml.NewTokenizer(bytes.NewReader(content))
	var (
		segs     []segment
		headings []Heading
		texts    [][]byte
		ids      = idSet{}
		open     = -1
	)

	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			break
		}
		raw := append([]byte(nil), z.Raw()...)
		heading := -1

		switch tt {
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			id := ""
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				if string(k) == "id" {
					id = string(v)
					ids[id] = true
				}
			}
			level := headingLevel(name)
			if tt == xhtml.StartTagToken && open < 0 && level > 0 && level <= maxLevel {
				headings = append(headings, Heading{Level: level, ID: id, hadID: id != ""})
				texts = append(texts, nil)
				open = len(headings) - 1
				heading = open
			}
		case xhtml.TextToken:
			if open >= 0 {
				texts[open] = append(texts[open], z.Text()...)
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			if open >= 0 && headingLevel(name) == headings[open].Level {
				open = -1
			}
		}
		segs = append(segs, segment{raw: raw, heading: heading})
	}

	var num numberer
	for i := range headings {
		h := &headings[i]
		h.Text = strings.Join(strings.Fields(string(texts[i])), " ")
		h.Number = num.next(h.Level)
		if !h.hadID {
			h.ID = ids.claim(Slugify(h.Text))
		}
	}
	return segs, headings
}

func headingLevel(name []byte) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

func writeHeadingStart(buf *bytes.Buffer, raw []byte, h Heading, showLevel bool) {
	if h.hadID {
		buf.Write(raw)
	} else {
		buf.Write(bytes.TrimSuffix(raw, []byte(">")))
		buf.WriteString(` id="` + html.EscapeString(h.ID) + `">`)
	}
	buf.WriteString(`<a class="` + ClassLink + `" href="#` + html.EscapeString(h.ID) + `">#</a>`)
	if showLevel {
		buf.WriteString(`<span class="` + ClassLevel + `">` + h.Number + `</span> `)
	}
}

func writeNavigation(buf *bytes.Buffer, headings []Heading, showLevel bool) {
	top := headings[0].Level
	for _, h := range headings {
		top = min(top, h.Level)
	}

	buf.WriteString(`<nav class="` + ClassNavigation + `"><ul>`)
	for _, h := range headings {
		fmt.Fprintf(buf, `<li class="%s-%d"><a href="#%s">`, ClassLevel, h.Level-top+1, html.EscapeString(h.ID))
		if showLevel {
			buf.WriteString(h.Number + " ")
		}
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></li>`)
	}
	buf.WriteString(`</ul></nav>`)
}
