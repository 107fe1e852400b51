// Package frontmatter reads and writes the YAML header of markdown page sources.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a page source split into its header fields and markdown body.
type Document struct {
	Fields map[string]any
	Body   []byte
	// Had reports whether the source carried a frontmatter block, even an empty one.
	Had bool
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
// A document that does not start with a delimiter line has no frontmatter and
// its body is the full input. Both LF and CRLF line endings are accepted.
func Split(content []byte) (frontmatter, body []byte, had bool, err error) {
	nl := newline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line has no trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return rest[:len(rest)-3], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes its frontmatter fields.
func Parse(content []byte) (Document, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return Document{}, err
	}
	fields, err := ParseYAML(fm)
	if err != nil {
		return Document{}, fmt.Errorf("frontmatter: %w", err)
	}
	return Document{Fields: fields, Body: body, Had: had}, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// String returns the string field key, or "" when it is missing or not a string.
func (d Document) String(key string) string {
	s, _ := d.Fields[key].(string)
	return strings.TrimSpace(s)
}

// Title is the page title declared in the frontmatter, if any.
func (d Document) Title() string {
	return d.String("title")
}

// Render writes fields as a frontmatter block followed by body. Keys are
// emitted in sorted order. An empty field set produces body alone.
func Render(fields map[string]any, body []byte) ([]byte, error) {
	if len(fields) == 0 {
		return body, nil
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fields); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
