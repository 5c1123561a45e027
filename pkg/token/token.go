// Package token defines the lexical vocabulary of the ferin language.
//
// The keyword table is fixed and read-only; every compilation shares it.
package token

import (
	"fmt"
	"sort"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names mirror the language's token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	NEWLINE
	INDENT // block start, synthesized by the indentation pass
	DEDENT // block end, synthesized by the indentation pass
	COMMENT

	// Literals
	IDENT    // name
	NUMBER   // 12, 3.5
	STRING   // "hi" or 'hi', literal keeps the quotes
	TEMPLATE // `hi`, literal keeps the backticks
	BOOLEAN  // true, false
	TAG      // /div, literal keeps the slash

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	POWER     // **
	ASSIGN    // =
	EQ        // ==
	NE        // !=
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	AND       // &&
	OR        // ||
	NOT       // !
	COLON     // :
	SEMICOLON // ;
	COMMA     // ,
	DOT       // .
	QUESTION  // ?
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }

	// Keywords (alphabetical)
	AS
	ASYNC
	AWAIT
	BREAK
	CATCH
	CLASS
	COMP
	CONTINUE
	DEFAULT
	ELSE
	ENUM
	EXPORT
	FINALLY
	FN
	FOR
	FROM
	IF
	IMPLEMENTS
	IMPORT
	IN
	LOOP
	NULL
	OF
	PASS
	PRIVATE
	PUBLIC
	REF
	RET
	SELF
	STATIC
	STRUCT
	SUPER
	TRY
	TYPE
	UNDEFINED
	VAR
	WHILE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	NEWLINE: "NEWLINE",
	INDENT:  "INDENT",
	DEDENT:  "DEDENT",
	COMMENT: "COMMENT",

	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	TEMPLATE: "TEMPLATE",
	BOOLEAN:  "BOOLEAN",
	TAG:      "TAG",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	POWER:     "**",
	ASSIGN:    "=",
	EQ:        "==",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	AND:       "&&",
	OR:        "||",
	NOT:       "!",
	COLON:     ":",
	SEMICOLON: ";",
	COMMA:     ",",
	DOT:       ".",
	QUESTION:  "?",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",

	AS:         "AS",
	ASYNC:      "ASYNC",
	AWAIT:      "AWAIT",
	BREAK:      "BREAK",
	CATCH:      "CATCH",
	CLASS:      "CLASS",
	COMP:       "COMP",
	CONTINUE:   "CONTINUE",
	DEFAULT:    "DEFAULT",
	ELSE:       "ELSE",
	ENUM:       "ENUM",
	EXPORT:     "EXPORT",
	FINALLY:    "FINALLY",
	FN:         "FN",
	FOR:        "FOR",
	FROM:       "FROM",
	IF:         "IF",
	IMPLEMENTS: "IMPLEMENTS",
	IMPORT:     "IMPORT",
	IN:         "IN",
	LOOP:       "LOOP",
	NULL:       "NULL",
	OF:         "OF",
	PASS:       "PASS",
	PRIVATE:    "PRIVATE",
	PUBLIC:     "PUBLIC",
	REF:        "REF",
	RET:        "RET",
	SELF:       "SELF",
	STATIC:     "STATIC",
	STRUCT:     "STRUCT",
	SUPER:      "SUPER",
	TRY:        "TRY",
	TYPE:       "TYPE",
	UNDEFINED:  "UNDEFINED",
	VAR:        "VAR",
	WHILE:      "WHILE",
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"as":         AS,
	"async":      ASYNC,
	"await":      AWAIT,
	"break":      BREAK,
	"catch":      CATCH,
	"class":      CLASS,
	"comp":       COMP,
	"continue":   CONTINUE,
	"default":    DEFAULT,
	"else":       ELSE,
	"enum":       ENUM,
	"export":     EXPORT,
	"false":      BOOLEAN,
	"finally":    FINALLY,
	"fn":         FN,
	"for":        FOR,
	"from":       FROM,
	"if":         IF,
	"implements": IMPLEMENTS,
	"import":     IMPORT,
	"in":         IN,
	"loop":       LOOP,
	"null":       NULL,
	"of":         OF,
	"pass":       PASS,
	"private":    PRIVATE,
	"public":     PUBLIC,
	"ref":        REF,
	"ret":        RET,
	"self":       SELF,
	"static":     STATIC,
	"struct":     STRUCT,
	"super":      SUPER,
	"true":       BOOLEAN,
	"try":        TRY,
	"type":       TYPE,
	"undefined":  UNDEFINED,
	"var":        VAR,
	"while":      WHILE,
}

// Keywords returns the reserved words in alphabetical order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned. Matching is case-sensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a reserved word.
// BOOLEAN is produced only by keywords, so it counts.
func IsKeyword(t TokenType) bool {
	return t == BOOLEAN || (t >= AS && t <= WHILE)
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= RBRACE
}

// IsBlockMarker reports whether t is a synthetic INDENT or DEDENT.
func IsBlockMarker(t TokenType) bool {
	return t == INDENT || t == DEDENT
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// String renders the token for debugging output.
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s@%s", t.Type, t.Pos)
	}
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}

// Span returns the source range the token covers. Literals are source
// slices, so the end follows from walking the literal from Pos.
func (t Token) Span() Span {
	end := t.Pos
	end.Offset += len(t.Literal)
	for _, r := range t.Literal {
		if r == '\n' {
			end.Line++
			end.Column = 1
			continue
		}
		end.Column++
	}
	return Span{Start: t.Pos, End: end}
}

// Class names the broad kind of a token type for tooling output.
func Class(t TokenType) string {
	switch {
	case IsKeyword(t):
		return "keyword"
	case IsOperator(t):
		return "operator"
	case IsBlockMarker(t), t == NEWLINE, t == EOF:
		return "layout"
	case t == COMMENT:
		return "comment"
	case t == IDENT:
		return "ident"
	default:
		return "literal"
	}
}
