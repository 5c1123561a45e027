package ast

import "github.com/leapstack-labs/ferin/pkg/token"

// AttrKind distinguishes the three attribute forms.
type AttrKind int

// Attribute kinds.
const (
	AttrBool   AttrKind = iota // name
	AttrString                 // name="literal"
	AttrExpr                   // name={expr} or name=expr
)

// Attribute is a single attribute on a markup element.
type Attribute struct {
	NamePos token.Position
	Name    string
	Kind    AttrKind
	Value   string // AttrString, quotes removed
	Expr    Expr   // AttrExpr
}

// MarkupChild is implemented by the node kinds allowed inside an element:
// *MarkupElement, *MarkupText and *MarkupExpr.
type MarkupChild interface {
	Node
	childNode()
}

// MarkupText is a string literal child, quotes removed.
type MarkupText struct {
	TextPos token.Position
	Value   string
}

// MarkupExpr is an expression child, either braced or bare.
type MarkupExpr struct {
	X Expr
}

// MarkupElement is `/tag attrs [: children]`.
type MarkupElement struct {
	TagPos     token.Position
	Tag        string
	Attributes []*Attribute
	Children   []MarkupChild
}

func (*MarkupElement) childNode() {}
func (*MarkupText) childNode()    {}
func (*MarkupExpr) childNode()    {}

// Pos implements Node.
func (m *MarkupElement) Pos() token.Position { return m.TagPos }

// Pos implements Node.
func (m *MarkupText) Pos() token.Position { return m.TextPos }

// Pos implements Node.
func (m *MarkupExpr) Pos() token.Position { return m.X.Pos() }
