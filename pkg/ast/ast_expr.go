package ast

import "github.com/leapstack-labs/ferin/pkg/token"

// ---------- Expression Types ----------

// Ident is a bare name. `self` and `super` are parsed as identifiers too.
type Ident struct {
	NamePos token.Position
	Name    string
}

// LiteralKind represents the kind of a literal.
type LiteralKind int

// LiteralKind constants.
const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralTemplate
	LiteralBool
	LiteralNull
	LiteralUndefined
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	case LiteralTemplate:
		return "template"
	case LiteralBool:
		return "boolean"
	case LiteralNull:
		return "null"
	case LiteralUndefined:
		return "undefined"
	}
	return "unknown"
}

// Literal is a scalar value. For strings and templates Value is the raw
// text between the delimiters, escapes untouched.
type Literal struct {
	ValuePos token.Position
	Kind     LiteralKind
	Value    string
}

// BinaryExpr is `Left Op Right`. Op is the operator's source text.
type BinaryExpr struct {
	Left  Expr
	Op    string
	OpPos token.Position
	Right Expr
}

// UnaryExpr is `!x`, `-x` or `await x`.
type UnaryExpr struct {
	OpPos   token.Position
	Op      string
	Operand Expr
}

// CallExpr is `Callee(Args...)`.
type CallExpr struct {
	Callee Expr
	Lparen token.Position
	Args   []Expr
}

// MemberExpr is `Object.Property` or, when Computed, `Object[Index]`.
type MemberExpr struct {
	Object   Expr
	Property string
	Index    Expr
	Computed bool
}

// ArrayLit is `[a, b, c]`.
type ArrayLit struct {
	Lbrack   token.Position
	Elements []Expr
}

// Property is one `key: value` entry of an object literal.
type Property struct {
	Key   Expr
	Value Expr
}

// ObjectLit is `{k: v, ...}`.
type ObjectLit struct {
	Lbrace     token.Position
	Properties []*Property
}

func (*Ident) exprNode()         {}
func (*Literal) exprNode()       {}
func (*BinaryExpr) exprNode()    {}
func (*UnaryExpr) exprNode()     {}
func (*CallExpr) exprNode()      {}
func (*MemberExpr) exprNode()    {}
func (*ArrayLit) exprNode()      {}
func (*ObjectLit) exprNode()     {}
func (*MarkupElement) exprNode() {}

// Pos implements Node.
func (e *Ident) Pos() token.Position { return e.NamePos }

// Pos implements Node.
func (e *Literal) Pos() token.Position { return e.ValuePos }

// Pos implements Node.
func (e *BinaryExpr) Pos() token.Position { return e.Left.Pos() }

// Pos implements Node.
func (e *UnaryExpr) Pos() token.Position { return e.OpPos }

// Pos implements Node.
func (e *CallExpr) Pos() token.Position { return e.Callee.Pos() }

// Pos implements Node.
func (e *MemberExpr) Pos() token.Position { return e.Object.Pos() }

// Pos implements Node.
func (e *ArrayLit) Pos() token.Position { return e.Lbrack }

// Pos implements Node.
func (e *ObjectLit) Pos() token.Position { return e.Lbrace }
