package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSpan(t *testing.T) {
	tests := []struct {
		name  string
		tok   Token
		start Position
		end   Position
		str   string
	}{
		{
			name:  "identifier",
			tok:   Token{Type: IDENT, Literal: "count", Pos: Position{Line: 2, Column: 5, Offset: 14}},
			start: Position{Line: 2, Column: 5, Offset: 14},
			end:   Position{Line: 2, Column: 10, Offset: 19},
			str:   "2:5-2:10",
		},
		{
			name:  "string across lines",
			tok:   Token{Type: STRING, Literal: "'a\nbc'", Pos: Position{Line: 1, Column: 3, Offset: 2}},
			start: Position{Line: 1, Column: 3, Offset: 2},
			end:   Position{Line: 2, Column: 4, Offset: 8},
			str:   "1:3-2:4",
		},
		{
			name:  "multibyte literal counts runes",
			tok:   Token{Type: STRING, Literal: `"é"`, Pos: Position{Line: 1, Column: 1}},
			start: Position{Line: 1, Column: 1},
			end:   Position{Line: 1, Column: 4, Offset: 4},
			str:   "1:1-1:4",
		},
		{
			name:  "block marker is empty",
			tok:   Token{Type: INDENT, Pos: Position{Line: 3, Column: 3, Offset: 20}},
			start: Position{Line: 3, Column: 3, Offset: 20},
			end:   Position{Line: 3, Column: 3, Offset: 20},
			str:   "3:3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := tt.tok.Span()
			assert.Equal(t, tt.start, span.Start)
			assert.Equal(t, tt.end, span.End)
			assert.True(t, span.IsValid())
			assert.Equal(t, tt.str, span.String())
		})
	}
}

func TestSpanContains(t *testing.T) {
	span := Token{Type: IDENT, Literal: "abc", Pos: Position{Line: 1, Column: 4, Offset: 3}}.Span()

	assert.False(t, span.Contains(2))
	assert.True(t, span.Contains(3))
	assert.True(t, span.Contains(5))
	assert.False(t, span.Contains(6), "the end is exclusive")

	assert.False(t, Span{}.IsValid())
	assert.Equal(t, "0:0", Span{}.String())
}

func TestClass(t *testing.T) {
	tests := []struct {
		typ  TokenType
		want string
	}{
		{IF, "keyword"},
		{BOOLEAN, "keyword"},
		{PLUS, "operator"},
		{RBRACE, "operator"},
		{INDENT, "layout"},
		{NEWLINE, "layout"},
		{EOF, "layout"},
		{COMMENT, "comment"},
		{IDENT, "ident"},
		{STRING, "literal"},
		{TAG, "literal"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Class(tt.typ))
			assert.Equal(t, tt.want == "operator", IsOperator(tt.typ))
		})
	}
}
