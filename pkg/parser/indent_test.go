package parser_test

import (
	"testing"

	"github.com/leapstack-labs/ferin/pkg/parser"
	"github.com/leapstack-labs/ferin/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countType(tokens []token.Token, t token.TokenType) int {
	n := 0
	for _, tok := range tokens {
		if tok.Type == t {
			n++
		}
	}
	return n
}

// assertWellFormed checks the invariants every tokenized stream must hold.
func assertWellFormed(t *testing.T, tokens []token.Token) {
	t.Helper()
	require.NotEmpty(t, tokens)
	assert.Equal(t, token.EOF, tokens[len(tokens)-1].Type, "stream must end with EOF")
	assert.Equal(t, 1, countType(tokens, token.EOF), "exactly one EOF")

	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case token.INDENT:
			depth++
		case token.DEDENT:
			depth--
			assert.GreaterOrEqual(t, depth, 0, "DEDENT without INDENT at %s", tok.Pos)
		}
	}
	assert.Equal(t, 0, depth, "INDENT and DEDENT must balance")
}

func TestIndentWidths(t *testing.T) {
	src := "if a:\n  if b:\n    x\n  y\n"
	tokens, err := parser.Tokenize(src)
	require.NoError(t, err)
	assertWellFormed(t, tokens)

	assert.Equal(t, []token.TokenType{
		token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT, token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT, token.IDENT, token.NEWLINE,
		token.DEDENT, token.IDENT, token.NEWLINE,
		token.DEDENT, token.EOF,
	}, types(tokens))
}

func TestIndentTwoFourTwo(t *testing.T) {
	src := "a:\n  b:\n    c\n  d"
	tokens, err := parser.Tokenize(src)
	require.NoError(t, err)
	assertWellFormed(t, tokens)

	// one INDENT entering width 4 and one DEDENT returning to 2
	var between []token.TokenType
	inner := false
	for _, tok := range tokens {
		if tok.Type == token.IDENT && tok.Literal == "b" {
			inner = true
			continue
		}
		if tok.Type == token.IDENT && tok.Literal == "d" {
			break
		}
		if inner {
			between = append(between, tok.Type)
		}
	}
	assert.Equal(t, []token.TokenType{token.COLON, token.NEWLINE, token.INDENT, token.IDENT, token.NEWLINE, token.DEDENT}, between)
}

func TestIndentSkipsBlankAndCommentLines(t *testing.T) {
	src := "a:\n  b\n\n# top level comment\n      # deep comment\n  c\n"
	tokens, err := parser.Tokenize(src)
	require.NoError(t, err)
	assertWellFormed(t, tokens)
	assert.Equal(t, 1, countType(tokens, token.INDENT))
	assert.Equal(t, 1, countType(tokens, token.DEDENT))
}

func TestIndentUnwindsAtEOF(t *testing.T) {
	src := "a:\n  b:\n    c:\n      d"
	tokens, err := parser.Tokenize(src)
	require.NoError(t, err)
	assertWellFormed(t, tokens)

	n := len(tokens)
	assert.Equal(t, []token.TokenType{token.DEDENT, token.DEDENT, token.DEDENT, token.EOF}, types(tokens[n-4:]))
	for _, tok := range tokens[n-4:] {
		assert.Equal(t, tokens[n-1].Pos, tok.Pos, "trailing markers sit at the end of input")
	}
}

func TestIndentMultipleDedents(t *testing.T) {
	src := "a:\n  b:\n    c\nd"
	tokens, err := parser.Tokenize(src)
	require.NoError(t, err)
	assertWellFormed(t, tokens)
	assert.Equal(t, []token.TokenType{token.DEDENT, token.DEDENT, token.IDENT, token.EOF}, types(tokens[len(tokens)-4:]))
}

func TestIndentIsIdempotent(t *testing.T) {
	sources := []string{
		"",
		"x",
		"a:\n  b\n",
		"a:\n  b:\n    c\n  d\ne",
		"comp App():\n  ret /div:\n    /p \"hi\"\n    # note\n\n    {count}\n",
		"a:\n    b\n  c\n",
	}
	for _, src := range sources {
		once, err := parser.Tokenize(src)
		require.NoError(t, err)
		twice := parser.Indent(once)
		assert.Equal(t, once, twice, "source %q", src)
		assertWellFormed(t, twice)
	}
}

func TestIndentInconsistentDedent(t *testing.T) {
	// width 2 matches no open level: pop 4, then stay at 0
	src := "a:\n    b\n  c\n"
	tokens, err := parser.Tokenize(src)
	require.NoError(t, err)
	assertWellFormed(t, tokens)
	assert.Equal(t, 1, countType(tokens, token.INDENT))
}

func TestIndentAddsMissingEOF(t *testing.T) {
	raw := []token.Token{
		{Type: token.IDENT, Literal: "a", Pos: token.Position{Line: 1, Column: 1}},
		{Type: token.NEWLINE, Literal: "\n", Pos: token.Position{Line: 1, Column: 2, Offset: 1}},
		{Type: token.IDENT, Literal: "b", Pos: token.Position{Line: 2, Column: 3, Offset: 4}},
	}
	out := parser.Indent(raw)
	assertWellFormed(t, out)
	assert.Equal(t, []token.TokenType{token.IDENT, token.NEWLINE, token.INDENT, token.IDENT, token.DEDENT, token.EOF}, types(out))
}
