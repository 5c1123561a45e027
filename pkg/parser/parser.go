// Package parser turns ferin source into an AST.
//
// # Usage
//
//	prog, err := parser.Parse(src)
//	if err != nil {
//	    // *LexError or *ParseError, both carry a position
//	}
//
// # Grammar Overview
//
// Blocks are delimited by the INDENT/DEDENT markers inserted by Indent.
//
//	program    → statement*
//	statement  → var | fn | class | if | for | while | loop | ret
//	           | import | export | comp | markup | assignment | expression
//	block      → ":" NEWLINE* (INDENT statement* DEDENT | statement)
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/ferin/pkg/ast"
	"github.com/leapstack-labs/ferin/pkg/token"
)

// Parser is a recursive descent parser over a token slice. It stops at the
// first error and never advances past EOF.
type Parser struct {
	tokens []token.Token
	pos    int
	token  token.Token // current token
	errors []error
}

// NewParser creates a parser for a token stream produced by Tokenize.
// Comment tokens are dropped; a missing EOF is added.
func NewParser(tokens []token.Token) *Parser {
	filtered := make([]token.Token, 0, len(tokens)+1)
	for _, tok := range tokens {
		if tok.Type != token.COMMENT {
			filtered = append(filtered, tok)
		}
	}
	if n := len(filtered); n == 0 || filtered[n-1].Type != token.EOF {
		var pos token.Position
		if n > 0 {
			pos = filtered[n-1].Pos
		}
		filtered = append(filtered, token.Token{Type: token.EOF, Pos: pos})
	}
	p := &Parser{tokens: filtered}
	p.token = p.tokens[0]
	return p
}

// Parse tokenizes and parses src.
func Parse(src string) (*ast.Program, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseProgram()
}

// ParseProgram parses every top-level statement.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.failed() {
		p.skipTerminators()
		if p.check(token.EOF) {
			break
		}
		if stmt := p.parseStatement(); stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}
	if p.failed() {
		return nil, p.errors[0]
	}
	return prog, nil
}

// Errors returns the errors collected so far.
func (p *Parser) Errors() []error {
	return p.errors
}

// ---------- Token Helpers ----------

// advance moves to the next token. It stays on EOF.
func (p *Parser) advance() token.Token {
	tok := p.token
	if p.pos < len(p.tokens)-1 {
		p.pos++
		p.token = p.tokens[p.pos]
	}
	return tok
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the token after the current one is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	if p.pos+1 >= len(p.tokens) {
		return t == token.EOF
	}
	return p.tokens[p.pos+1].Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.addError(fmt.Sprintf(ErrExpectedToken, t, describe(p.token)))
	return p.token, false
}

// expectIdent consumes an identifier and returns its name.
func (p *Parser) expectIdent() string {
	tok, _ := p.expect(token.IDENT)
	return tok.Literal
}

// addError records a parse error at the current token. Only the first error
// is kept; afterwards the parser jumps to EOF so every loop unwinds.
func (p *Parser) addError(msg string) {
	p.addErrorAt(p.token.Pos, msg)
}

func (p *Parser) addErrorAt(pos token.Position, msg string) {
	if p.failed() {
		return
	}
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: msg})
	p.pos = len(p.tokens) - 1
	p.token = p.tokens[p.pos]
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// skipNewlines skips NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// skipTerminators skips NEWLINE and stray ';' between statements.
func (p *Parser) skipTerminators() {
	for p.check(token.NEWLINE) || p.check(token.SEMICOLON) {
		p.advance()
	}
}

// atStatementEnd reports whether the current token ends a statement.
func (p *Parser) atStatementEnd() bool {
	switch p.token.Type {
	case token.NEWLINE, token.SEMICOLON, token.DEDENT, token.EOF:
		return true
	}
	return false
}

// block parses the body that follows a block-introducing colon. An INDENT
// opens a block that runs to its DEDENT. A body on the same line as the
// colon is that single item. A body starting on the next line without an
// INDENT runs to the enclosing block's DEDENT or EOF, which it leaves in
// place.
func (p *Parser) block(item func()) {
	sameLine := !p.check(token.NEWLINE)
	p.skipNewlines()
	if p.check(token.EOF) || p.check(token.DEDENT) {
		p.addError(fmt.Sprintf(ErrExpectedBlock, describe(p.token)))
		return
	}
	if !p.match(token.INDENT) {
		if sameLine {
			item()
			return
		}
		for !p.failed() {
			p.skipTerminators()
			if p.check(token.DEDENT) || p.check(token.EOF) {
				return
			}
			item()
		}
		return
	}
	for !p.failed() {
		p.skipTerminators()
		if p.match(token.DEDENT) || p.check(token.EOF) {
			return
		}
		item()
	}
}

// parseBlock parses a statement block.
func (p *Parser) parseBlock() []ast.Stmt {
	var body []ast.Stmt
	p.block(func() {
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		}
	})
	return body
}

// describe renders a token for error messages: its kind, plus the text for
// names and literals.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.IDENT, token.NUMBER, token.STRING, token.TEMPLATE, token.TAG, token.BOOLEAN:
		return fmt.Sprintf("%s %s", tok.Type, strconv.Quote(tok.Literal))
	}
	return tok.Type.String()
}

// unquote strips the delimiters of a STRING or TEMPLATE literal. Escapes
// are kept as written.
func unquote(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	return lit[1 : len(lit)-1]
}
