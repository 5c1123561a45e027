package lsp

import (
	"testing"

	"github.com/leapstack-labs/ferin/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	uri := "file:///project/main.ferin"

	doc := store.Open(uri, "var x = 1\n", 1)
	require.NotNil(t, doc)
	assert.Same(t, doc, store.Get(uri))

	updated := store.Update(uri, "var x = 2\n", 2)
	require.NotNil(t, updated)
	assert.Equal(t, protocol.Integer(2), store.Get(uri).Version)
	assert.Equal(t, "var x = 1\n", doc.Content, "earlier snapshots are not modified")

	assert.Nil(t, store.Update("file:///other.ferin", "", 1), "updates to unopened documents are dropped")

	store.Open("file:///project/a.ferin", "", 1)
	assert.Equal(t, []string{"file:///project/a.ferin", uri}, store.List())

	store.Close(uri)
	assert.Nil(t, store.Get(uri))
}

func TestLineStarts(t *testing.T) {
	tests := []struct {
		content string
		want    []int
	}{
		{"", []int{0}},
		{"abc", []int{0}},
		{"a\nb", []int{0, 2}},
		{"\n\n", []int{0, 1, 2}},
		{"line1\nline2\nline3", []int{0, 6, 12}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lineStarts(tt.content), "content %q", tt.content)
	}
}

func TestPositionOffsetRoundTrip(t *testing.T) {
	doc := newDocument("file:///t.ferin", "var a = 1\nvar bb = 2\n", 1)

	tests := []struct {
		pos    protocol.Position
		offset int
	}{
		{at(0, 0), 0},
		{at(0, 4), 4},
		{at(1, 0), 10},
		{at(1, 4), 14},
		{at(2, 0), 21},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.offset, doc.PositionToOffset(tt.pos), "pos %+v", tt.pos)
		assert.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset), "offset %d", tt.offset)
	}

	assert.Equal(t, 9, doc.PositionToOffset(at(0, 40)), "character past line end clamps to the newline")
	assert.Equal(t, len(doc.Content), doc.PositionToOffset(at(9, 0)))
}

func TestPositionsCountUTF16(t *testing.T) {
	// "é" is two bytes and one UTF-16 unit; "😀" is four bytes and two units.
	doc := newDocument("file:///t.ferin", "log(\"é😀\", x)\n", 1)

	xOffset := len("log(\"é😀\", ")
	pos := doc.OffsetToPosition(xOffset)
	assert.Equal(t, protocol.Position{Line: 0, Character: 11}, pos)
	assert.Equal(t, xOffset, doc.PositionToOffset(pos))

	// Compiler columns count runes: x is the 11th.
	assert.Equal(t, pos, doc.SourcePosition(token.Position{Line: 1, Column: 11}))
}

func TestSourcePosition(t *testing.T) {
	doc := newDocument("file:///t.ferin", "fn f(:\n  pass\n", 1)

	assert.Equal(t, protocol.Position{Line: 0, Character: 5}, doc.SourcePosition(token.Position{Line: 1, Column: 6, Offset: 5}))
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, doc.SourcePosition(token.Position{Line: 2, Column: 3}))
	assert.Equal(t, protocol.Position{}, doc.SourcePosition(token.Position{}))
}

func TestTokenRange(t *testing.T) {
	doc := newDocument("file:///t.ferin", "var count = 1\n", 1)

	assert.Equal(t, protocol.Range{Start: at(0, 4), End: at(0, 9)}, doc.TokenRange(4))
	assert.Equal(t, protocol.Range{Start: at(0, 10), End: at(0, 11)}, doc.TokenRange(10), "punctuation covers one character")
}

func TestWordAt(t *testing.T) {
	doc := newDocument("file:///t.ferin", "ret /App name=user_name\n", 1)

	word, rng := doc.WordAt(at(0, 6))
	assert.Equal(t, "App", word)
	assert.Equal(t, protocol.Range{Start: at(0, 5), End: at(0, 8)}, rng)

	word, _ = doc.WordAt(at(0, 18))
	assert.Equal(t, "user_name", word)

	word, _ = doc.WordAt(at(0, 3))
	assert.Equal(t, "ret", word, "the position right after a word still selects it")

	word, _ = doc.WordAt(at(0, 4))
	assert.Empty(t, word)
}

func TestLinePrefix(t *testing.T) {
	doc := newDocument("file:///t.ferin", "comp A():\n  ret /di\n", 1)
	assert.Equal(t, "  ret /di", doc.LinePrefix(at(1, 9)))
	assert.Equal(t, "  ret /di", doc.Line(1))
	assert.Empty(t, doc.LinePrefix(at(7, 0)))
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/home/dev/my app/main.ferin", URIToPath("file:///home/dev/my%20app/main.ferin"))
	assert.Equal(t, "untitled:1", URIToPath("untitled:1"))
	assert.Equal(t, "file:///home/dev/my%20app/main.ferin", PathToURI("/home/dev/my app/main.ferin"))
	assert.Equal(t, "file:///x.ferin", PathToURI("file:///x.ferin"))
}

func at(line, char protocol.UInteger) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}
