package parser

import "github.com/leapstack-labs/ferin/pkg/token"

// Indent inserts INDENT and DEDENT markers into a raw token stream.
//
// After every NEWLINE the next real token (comments skipped) decides the
// indentation of its line. Blank and comment-only lines are ignored. A
// deeper line pushes its width and emits one INDENT; a shallower line pops
// and emits one DEDENT per popped width. Remaining widths are unwound before
// the single trailing EOF.
//
// Markers already present in the input are discarded first, so applying
// Indent to its own output returns an equal stream.
func Indent(tokens []token.Token) []token.Token {
	src := make([]token.Token, 0, len(tokens))
	eof := token.Token{Type: token.EOF}
	hasEOF := false
	for _, tok := range tokens {
		switch {
		case token.IsBlockMarker(tok.Type):
			continue
		case tok.Type == token.EOF:
			if !hasEOF {
				eof, hasEOF = tok, true
			}
			continue
		}
		src = append(src, tok)
	}
	if !hasEOF && len(src) > 0 {
		eof.Pos = src[len(src)-1].Pos
	}

	stack := []int{0}
	out := make([]token.Token, 0, len(src)+8)
	for i, tok := range src {
		out = append(out, tok)
		if tok.Type != token.NEWLINE {
			continue
		}

		j := i + 1
		for j < len(src) && src[j].Type == token.COMMENT {
			j++
		}
		if j >= len(src) {
			continue
		}
		next := src[j]
		if next.Type == token.NEWLINE || next.Pos.Line != tok.Pos.Line+1 {
			continue
		}

		width := next.Pos.Column - 1
		if width > stack[len(stack)-1] {
			stack = append(stack, width)
			out = append(out, token.Token{Type: token.INDENT, Pos: next.Pos})
			continue
		}
		for len(stack) > 1 && stack[len(stack)-1] > width {
			stack = stack[:len(stack)-1]
			out = append(out, token.Token{Type: token.DEDENT, Pos: next.Pos})
		}
	}

	for len(stack) > 1 {
		stack = stack[:len(stack)-1]
		out = append(out, token.Token{Type: token.DEDENT, Pos: eof.Pos})
	}
	return append(out, eof)
}
