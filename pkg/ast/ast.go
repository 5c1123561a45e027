// Package ast defines the syntax tree produced by the ferin parser.
//
// Statements and expressions are closed families: every variant implements
// Stmt or Expr through an unexported marker method, so a type switch over
// them in this module is exhaustive by construction.
package ast

import "github.com/leapstack-labs/ferin/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the token the node was built from.
	Pos() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed source file.
type Program struct {
	Body []Stmt
}

// Pos implements Node.
func (p *Program) Pos() token.Position {
	if len(p.Body) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Body[0].Pos()
}
