package transform

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ferin/pkg/ast"
)

// markup renders an element as a createElement(tag, attrs, children) call.
// Attributes become an object literal, or null when there are none.
func (e *emitter) markup(el *ast.MarkupElement) string {
	attrs := "null"
	if len(el.Attributes) > 0 {
		parts := make([]string, 0, len(el.Attributes))
		for _, a := range el.Attributes {
			parts = append(parts, a.Name+": "+e.attrValue(a))
		}
		attrs = "{ " + strings.Join(parts, ", ") + " }"
	}

	children := make([]string, 0, len(el.Children))
	for _, c := range el.Children {
		children = append(children, e.markupChild(c))
	}
	return fmt.Sprintf("createElement(%s, %s, [%s])", quoteJS(el.Tag), attrs, strings.Join(children, ", "))
}

func (e *emitter) attrValue(a *ast.Attribute) string {
	switch a.Kind {
	case ast.AttrString:
		return quoteJS(a.Value)
	case ast.AttrExpr:
		return e.expr(a.Expr)
	}
	return "true"
}

func (e *emitter) markupChild(c ast.MarkupChild) string {
	switch n := c.(type) {
	case *ast.MarkupElement:
		return e.markup(n)
	case *ast.MarkupText:
		return quoteJS(n.Value)
	case *ast.MarkupExpr:
		return e.expr(n.X)
	}
	return "null"
}
