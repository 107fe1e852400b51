package anchor

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const fallbackSlug = "section"

// Slugify turns heading text into an id: diacritics folded away, lower case,
// and every run of characters other than letters and digits collapsed to "-".
func Slugify(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingDash = true
			continue
		}
		if pendingDash && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingDash = false
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// idSet hands out unique ids for one page.
type idSet map[string]bool

func (s idSet) claim(base string) string {
	id := base
	for i := 1; s[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	s[id] = true
	return id
}

// numberer assigns hierarchical numbers ("1.", "1.2.") to headings in order.
// A heading nests under the closest preceding heading of a shallower level.
type numberer struct {
	levels []int
	counts []int
}

func (n *numberer) next(level int) string {
	for len(n.levels) > 0 && n.levels[len(n.levels)-1] > level {
		n.levels = n.levels[:len(n.levels)-1]
		n.counts = n.counts[:len(n.counts)-1]
	}
	if top := len(n.levels) - 1; top >= 0 && n.levels[top] == level {
		n.counts[top]++
	} else {
		n.levels = append(n.levels, level)
		n.counts = append(n.counts, 1)
	}

	var b strings.Builder
	for _, c := range n.counts {
		fmt.Fprintf(&b, "%d.", c)
	}
	return b.String()
}
