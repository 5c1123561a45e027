package parser

import (
	"github.com/leapstack-labs/ferin/pkg/ast"
	"github.com/leapstack-labs/ferin/pkg/token"
)

// markup     → TAG attribute* (":" children | inline_child)?
// attribute  → name ["=" (STRING | "{" expr "}" | expr)]
// children   → NEWLINE* (INDENT child* DEDENT | child)
// child      → markup | STRING | "{" expr "}" | expr
//
// Attribute names may be keywords, so `/div class="row"` works.
func (p *Parser) parseMarkup() *ast.MarkupElement {
	tag := p.advance()
	el := &ast.MarkupElement{TagPos: tag.Pos, Tag: tag.Literal[1:]}

	for !p.failed() && (p.check(token.IDENT) || token.IsKeyword(p.token.Type)) {
		el.Attributes = append(el.Attributes, p.parseAttribute())
	}

	switch {
	case p.match(token.COLON):
		p.block(func() {
			if child := p.parseMarkupChild(); child != nil {
				el.Children = append(el.Children, child)
			}
		})
	case p.check(token.STRING), p.check(token.LBRACE):
		if child := p.parseMarkupChild(); child != nil {
			el.Children = append(el.Children, child)
		}
	}
	return el
}

func (p *Parser) parseAttribute() *ast.Attribute {
	name := p.advance()
	attr := &ast.Attribute{NamePos: name.Pos, Name: name.Literal, Kind: ast.AttrBool}
	if !p.match(token.ASSIGN) {
		return attr
	}
	switch {
	case p.check(token.STRING):
		attr.Kind = ast.AttrString
		attr.Value = unquote(p.advance().Literal)
	case p.match(token.LBRACE):
		attr.Kind = ast.AttrExpr
		attr.Expr = p.parseExpression()
		p.expect(token.RBRACE)
	default:
		attr.Kind = ast.AttrExpr
		attr.Expr = p.parseExpression()
	}
	return attr
}

// parseMarkupChild parses one child. A string on its own is text; a string
// that starts a larger expression is an expression child.
func (p *Parser) parseMarkupChild() ast.MarkupChild {
	switch p.token.Type {
	case token.TAG:
		return p.parseMarkup()
	case token.LBRACE:
		p.advance()
		x := p.parseExpression()
		p.expect(token.RBRACE)
		return &ast.MarkupExpr{X: x}
	}
	x := p.parseExpression()
	if lit, ok := x.(*ast.Literal); ok && lit.Kind == ast.LiteralString {
		return &ast.MarkupText{TextPos: lit.ValuePos, Value: lit.Value}
	}
	if el, ok := x.(*ast.MarkupElement); ok {
		return el
	}
	return &ast.MarkupExpr{X: x}
}
