package transform

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ferin/pkg/ast"
)

// expr renders an expression. Binary and unary expressions are always
// parenthesized so the parse tree's grouping is what JavaScript evaluates.
func (e *emitter) expr(x ast.Expr) string {
	switch n := x.(type) {
	case nil:
		return "undefined"
	case *ast.Ident:
		if n.Name == "self" {
			return "this"
		}
		return n.Name
	case *ast.Literal:
		return literal(n)
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.expr(n.Left), n.Op, e.expr(n.Right))
	case *ast.UnaryExpr:
		if n.Op == "await" {
			return fmt.Sprintf("(await %s)", e.expr(n.Operand))
		}
		return fmt.Sprintf("(%s%s)", n.Op, e.expr(n.Operand))
	case *ast.CallExpr:
		callee := e.expr(n.Callee)
		if id, ok := n.Callee.(*ast.Ident); ok && id.Name == "log" {
			callee = "console.log"
		}
		return fmt.Sprintf("%s(%s)", callee, e.exprList(n.Args))
	case *ast.MemberExpr:
		if n.Computed {
			return fmt.Sprintf("%s[%s]", e.expr(n.Object), e.expr(n.Index))
		}
		return e.expr(n.Object) + "." + n.Property
	case *ast.ArrayLit:
		return "[" + e.exprList(n.Elements) + "]"
	case *ast.ObjectLit:
		return e.object(n)
	case *ast.MarkupElement:
		return e.markup(n)
	}
	return "undefined"
}

func (e *emitter) exprList(list []ast.Expr) string {
	parts := make([]string, 0, len(list))
	for _, x := range list {
		parts = append(parts, e.expr(x))
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) object(o *ast.ObjectLit) string {
	if len(o.Properties) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(o.Properties))
	for _, prop := range o.Properties {
		parts = append(parts, e.objectKey(prop.Key)+": "+e.expr(prop.Value))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// objectKey renders names and literals as plain keys, anything else as a
// computed key.
func (e *emitter) objectKey(key ast.Expr) string {
	switch k := key.(type) {
	case *ast.Ident:
		return k.Name
	case *ast.Literal:
		if k.Kind == ast.LiteralString || k.Kind == ast.LiteralNumber {
			return literal(k)
		}
	}
	return "[" + e.expr(key) + "]"
}

func literal(l *ast.Literal) string {
	switch l.Kind {
	case ast.LiteralString:
		return quoteJS(l.Value)
	case ast.LiteralTemplate:
		return "`" + l.Value + "`"
	}
	return l.Value
}

// quoteJS wraps raw string contents in double quotes. Escape sequences are
// kept as written; bare double quotes and raw line breaks are escaped.
func quoteJS(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + 2)
	b.WriteByte('"')
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw):
			b.WriteByte(c)
			i++
			b.WriteByte(raw[i])
		case c == '\\':
			b.WriteString(`\\`)
		case c == '"':
			b.WriteString(`\"`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
