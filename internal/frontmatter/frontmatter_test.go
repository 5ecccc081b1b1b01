package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.False(t, doc.Had)
	require.Empty(t, doc.Front)
	require.Equal(t, input, doc.Body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	doc, err := Split([]byte("---\ntitle: R12\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("title: R12\n"), doc.Front)
	require.Equal(t, []byte("# Title\n"), doc.Body)
}

func TestSplit_CRLF(t *testing.T) {
	doc, err := Split([]byte("---\r\ntitle: R12\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, "\r\n", doc.Newline)
	require.Equal(t, []byte("title: R12\r\n"), doc.Front)
	require.Equal(t, []byte("# Title\r\n"), doc.Body)
}

func TestSplit_EmptyBlockAndTrailingDelimiter(t *testing.T) {
	doc, err := Split([]byte("---\n---\nbody"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Empty(t, doc.Front)
	require.Equal(t, []byte("body"), doc.Body)

	doc, err = Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("title: x\n"), doc.Front)
	require.Empty(t, doc.Body)
}

func TestSplit_MissingClosingDelimiter(t *testing.T) {
	_, err := Split([]byte("---\ntitle: x\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestJoin_RoundTrip(t *testing.T) {
	input := []byte("---\ntitle: R12\n---\nbody\n")
	doc, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, input, Join(doc.Front, doc.Body, doc.Newline))
	require.Equal(t, []byte("body"), Join(nil, []byte("body"), "\n"))
}

func TestParse(t *testing.T) {
	fields, err := Parse([]byte("title: Spring\ntags: [a, b]\n"))
	require.NoError(t, err)
	require.Equal(t, "Spring", fields["title"])

	fields, err = Parse(nil)
	require.NoError(t, err)
	require.Empty(t, fields)

	_, err = Parse([]byte("title: [unclosed"))
	require.Error(t, err)
}

func TestSerialize_KeepsOrderAndQuotes(t *testing.T) {
	out, err := Serialize([]Field{
		{Key: "title", Value: "2024 Archive"},
		{Key: "description", Value: "Release history for 2024"},
		{Key: "year", Value: "2024"},
		{Key: "draft", Value: false},
	})
	require.NoError(t, err)
	require.Equal(t, "title: \"2024 Archive\"\ndescription: \"Release history for 2024\"\nyear: \"2024\"\ndraft: false\n", string(out))
}

func TestSerialize_RejectsUnsupportedValues(t *testing.T) {
	_, err := Serialize([]Field{{Key: "x", Value: struct{}{}}})
	require.Error(t, err)
}
