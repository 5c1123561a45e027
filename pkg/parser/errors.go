package parser

import (
	"fmt"

	"github.com/leapstack-labs/ferin/pkg/token"
)

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at line %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at line %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedChar       = "unexpected character %q"
	ErrUnterminatedString   = "unterminated string"
	ErrUnterminatedTemplate = "unterminated template string"

	ErrExpectedToken     = "expected %s, got %s"
	ErrUnexpectedToken   = "unexpected token %s"
	ErrExpectedBlock     = "expected an indented block, got %s"
	ErrExpectedLoopKind  = "expected OF or IN, got %s"
	ErrInvalidAssignment = "cannot assign to %s"
	ErrExportTarget      = "export must be followed by a declaration, got %s"
	ErrClassMember       = "unexpected token %s in class body"
)
