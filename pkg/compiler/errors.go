package compiler

import (
	"errors"

	"github.com/leapstack-labs/ferin/pkg/parser"
	"github.com/leapstack-labs/ferin/pkg/token"
	"github.com/leapstack-labs/ferin/pkg/transform"
)

// Error is the single fatal error Compile reports.
type Error struct {
	Stage string // tokenize, parse or transform
	Err   error
}

func (e *Error) Error() string {
	return "Compilation failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind names the class of failure: lexical, syntax or validation.
func (e *Error) Kind() string {
	var (
		lexErr   *parser.LexError
		parseErr *parser.ParseError
		valErr   *transform.ValidationError
	)
	switch {
	case errors.As(e.Err, &lexErr):
		return "lexical"
	case errors.As(e.Err, &parseErr):
		return "syntax"
	case errors.As(e.Err, &valErr):
		return "validation"
	}
	return "internal"
}

// Position returns the source position of lexical and syntax errors.
func (e *Error) Position() (token.Position, bool) {
	var (
		lexErr   *parser.LexError
		parseErr *parser.ParseError
	)
	switch {
	case errors.As(e.Err, &lexErr):
		return lexErr.Pos, true
	case errors.As(e.Err, &parseErr):
		return parseErr.Pos, true
	}
	return token.Position{}, false
}
