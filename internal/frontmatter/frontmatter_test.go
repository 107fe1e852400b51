package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Setup\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Setup\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, had)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyBlock(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: Only\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Only\n"), fm)
	require.Empty(t, body)
}

func TestParse_Title(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: '  Install  '\nweight: 2\n---\nbody\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, "Install", doc.Title())
	require.Equal(t, 2, doc.Fields["weight"])
	require.Equal(t, []byte("body\n"), doc.Body)
	require.Empty(t, doc.String("weight"))
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: [unterminated\n---\nbody\n"))
	require.Error(t, err)
}

func TestRender_RoundTrip(t *testing.T) {
	out, err := Render(map[string]any{"title": "Intro", "author": "Ann"}, []byte("# Intro\n"))
	require.NoError(t, err)
	require.Equal(t, "---\nauthor: Ann\ntitle: Intro\n---\n# Intro\n", string(out))

	doc, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, "Intro", doc.Title())
}

func TestRender_NoFields(t *testing.T) {
	out, err := Render(nil, []byte("body"))
	require.NoError(t, err)
	require.Equal(t, "body", string(out))
}
