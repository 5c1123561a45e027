package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/leapstack-labs/ferin/pkg/token"
)

// Lexer tokenizes ferin source. It emits NEWLINE and COMMENT tokens but no
// block markers; Indent adds those afterwards.
type Lexer struct {
	input string
	pos   int // offset of the current byte
	line  int // current line number (1-based)
	col   int // current column number (1-based, in runes)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// ch returns the current byte, or 0 at end of input.
func (l *Lexer) ch() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// peekChar returns the byte after the current one without advancing.
func (l *Lexer) peekChar() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// readChar advances one byte. Columns only move on rune boundaries.
func (l *Lexer) readChar() {
	if l.atEOF() {
		return
	}
	c := l.input[l.pos]
	l.pos++
	switch {
	case c == '\n':
		l.line++
		l.col = 1
	case l.atEOF() || !isContinuationByte(l.input[l.pos]):
		l.col++
	}
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: pos}, nil
	}

	c := l.ch()
	switch {
	case c == '\n':
		l.readChar()
		return token.Token{Type: token.NEWLINE, Literal: "\n", Pos: pos}, nil
	case c == '#':
		return l.readComment(pos), nil
	case c == '"' || c == '\'':
		return l.readString(pos, token.STRING, ErrUnterminatedString)
	case c == '`':
		return l.readString(pos, token.TEMPLATE, ErrUnterminatedTemplate)
	case isDigit(c):
		return l.readNumber(pos), nil
	case isLetter(c):
		return l.readIdentifier(pos), nil
	case c == '/' && isAlpha(l.peekChar()):
		return l.readTag(pos), nil
	}

	if tok, ok := l.readOperator(pos); ok {
		return tok, nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return token.Token{}, &LexError{Pos: pos, Message: fmt.Sprintf(ErrUnexpectedChar, r)}
}

// twoCharOps are matched before single-character operators.
var twoCharOps = map[string]token.TokenType{
	"==": token.EQ,
	"!=": token.NE,
	"<=": token.LE,
	">=": token.GE,
	"&&": token.AND,
	"||": token.OR,
	"**": token.POWER,
}

var oneCharOps = map[byte]token.TokenType{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'=': token.ASSIGN,
	'<': token.LT,
	'>': token.GT,
	'!': token.NOT,
	':': token.COLON,
	';': token.SEMICOLON,
	',': token.COMMA,
	'.': token.DOT,
	'?': token.QUESTION,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	'{': token.LBRACE,
	'}': token.RBRACE,
}

func (l *Lexer) readOperator(pos token.Position) (token.Token, bool) {
	if l.pos+2 <= len(l.input) {
		lit := l.input[l.pos : l.pos+2]
		if t, ok := twoCharOps[lit]; ok {
			l.readChar()
			l.readChar()
			return token.Token{Type: t, Literal: lit, Pos: pos}, true
		}
	}
	if t, ok := oneCharOps[l.ch()]; ok {
		lit := string(l.ch())
		l.readChar()
		return token.Token{Type: t, Literal: lit, Pos: pos}, true
	}
	return token.Token{}, false
}

// skipWhitespace skips spaces, tabs and carriage returns. Newlines are tokens.
func (l *Lexer) skipWhitespace() {
	for c := l.ch(); c == ' ' || c == '\t' || c == '\r'; c = l.ch() {
		l.readChar()
	}
}

func (l *Lexer) readComment(pos token.Position) token.Token {
	start := l.pos
	for !l.atEOF() && l.ch() != '\n' {
		l.readChar()
	}
	return token.Token{Type: token.COMMENT, Literal: l.input[start:l.pos], Pos: pos}
}

// readString reads a quoted literal; the literal keeps its delimiters.
// A backslash escapes whatever follows it, including the delimiter.
func (l *Lexer) readString(pos token.Position, typ token.TokenType, unterminated string) (token.Token, error) {
	start := l.pos
	quote := l.ch()
	l.readChar()
	for {
		if l.atEOF() {
			return token.Token{}, &LexError{Pos: pos, Message: unterminated}
		}
		c := l.ch()
		l.readChar()
		if c == '\\' {
			if l.atEOF() {
				return token.Token{}, &LexError{Pos: pos, Message: unterminated}
			}
			l.readChar()
			continue
		}
		if c == quote {
			break
		}
	}
	return token.Token{Type: typ, Literal: l.input[start:l.pos], Pos: pos}, nil
}

// readNumber reads digits with at most one embedded dot.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.ch()) {
		l.readChar()
	}
	if l.ch() == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch()) {
			l.readChar()
		}
	}
	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	start := l.pos
	for isLetter(l.ch()) || isDigit(l.ch()) {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
}

// readTag reads `/name`; the tag name is letters and digits.
func (l *Lexer) readTag(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // '/'
	for isAlpha(l.ch()) || isDigit(l.ch()) {
		l.readChar()
	}
	return token.Token{Type: token.TAG, Literal: l.input[start:l.pos], Pos: pos}
}

// Lex returns the raw token stream for input: comments and newlines
// included, no block markers, terminated by a single EOF.
func Lex(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Tokenize lexes input and runs the indentation pass.
func Tokenize(input string) ([]token.Token, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	return Indent(tokens), nil
}

// ---------- Character Classification ----------

func isAlpha(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isLetter(ch byte) bool {
	return isAlpha(ch) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isContinuationByte(b byte) bool {
	return b&0xC0 == 0x80
}
