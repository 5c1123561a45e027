package parser

import (
	"fmt"

	"github.com/leapstack-labs/ferin/pkg/ast"
	"github.com/leapstack-labs/ferin/pkg/token"
)

// Expression precedence (lowest to highest):
// 1. ||
// 2. &&
// 3. == !=
// 4. < <= > >=
// 5. + -
// 6. * / %
// 7. **
// 8. unary ! - await
// 9. postfix: call, .name, [index]
// 10. primary
//
// Every binary level is left-associative. Unary sits above **, so
// `-2 ** 2` groups as `(-2) ** 2`.

// parseExpression parses an expression.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

// binaryLevel parses one left-associative level: next (op next)*.
func (p *Parser) binaryLevel(next func() ast.Expr, ops ...token.TokenType) ast.Expr {
	left := next()
	for !p.failed() && p.checkAny(ops...) {
		op := p.advance()
		right := next()
		left = &ast.BinaryExpr{Left: left, Op: op.Literal, OpPos: op.Pos, Right: right}
	}
	return left
}

func (p *Parser) checkAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

func (p *Parser) parseOr() ast.Expr {
	return p.binaryLevel(p.parseAnd, token.OR)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.binaryLevel(p.parseEquality, token.AND)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.binaryLevel(p.parseComparison, token.EQ, token.NE)
}

func (p *Parser) parseComparison() ast.Expr {
	return p.binaryLevel(p.parseAdditive, token.LT, token.LE, token.GT, token.GE)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.binaryLevel(p.parseMultiplicative, token.PLUS, token.MINUS)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.binaryLevel(p.parsePower, token.STAR, token.SLASH, token.PERCENT)
}

func (p *Parser) parsePower() ast.Expr {
	return p.binaryLevel(p.parseUnary, token.POWER)
}

// unary → ("!" | "-" | AWAIT) unary | postfix
func (p *Parser) parseUnary() ast.Expr {
	if p.checkAny(token.NOT, token.MINUS, token.AWAIT) {
		op := p.advance()
		return &ast.UnaryExpr{OpPos: op.Pos, Op: op.Literal, Operand: p.parseUnary()}
	}
	return p.parsePostfix()
}

// postfix → primary ( "(" args ")" | "." name | "[" expr "]" )*
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for !p.failed() {
		switch {
		case p.check(token.LPAREN):
			lparen := p.advance().Pos
			args := p.parseExprList(token.RPAREN)
			p.expect(token.RPAREN)
			expr = &ast.CallExpr{Callee: expr, Lparen: lparen, Args: args}
		case p.match(token.DOT):
			// keywords are valid property names: obj.default, process.exit
			if !p.check(token.IDENT) && !token.IsKeyword(p.token.Type) {
				p.addError(fmt.Sprintf(ErrExpectedToken, token.IDENT, describe(p.token)))
				return expr
			}
			expr = &ast.MemberExpr{Object: expr, Property: p.advance().Literal}
		case p.match(token.LBRACKET):
			index := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = &ast.MemberExpr{Object: expr, Index: index, Computed: true}
		default:
			return expr
		}
	}
	return expr
}

// parseExprList parses comma-separated expressions up to (not including) end.
func (p *Parser) parseExprList(end token.TokenType) []ast.Expr {
	var list []ast.Expr
	if p.check(end) {
		return list
	}
	for !p.failed() {
		list = append(list, p.parseExpression())
		if !p.match(token.COMMA) {
			break
		}
	}
	return list
}

// parsePrimary parses literals, names, grouping, arrays, objects and markup.
//
//nolint:gocyclo // one case per primary form
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.token
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return &ast.Literal{ValuePos: tok.Pos, Kind: ast.LiteralNumber, Value: tok.Literal}
	case token.STRING:
		p.advance()
		return &ast.Literal{ValuePos: tok.Pos, Kind: ast.LiteralString, Value: unquote(tok.Literal)}
	case token.TEMPLATE:
		p.advance()
		return &ast.Literal{ValuePos: tok.Pos, Kind: ast.LiteralTemplate, Value: unquote(tok.Literal)}
	case token.BOOLEAN:
		p.advance()
		return &ast.Literal{ValuePos: tok.Pos, Kind: ast.LiteralBool, Value: tok.Literal}
	case token.NULL:
		p.advance()
		return &ast.Literal{ValuePos: tok.Pos, Kind: ast.LiteralNull, Value: "null"}
	case token.UNDEFINED:
		p.advance()
		return &ast.Literal{ValuePos: tok.Pos, Kind: ast.LiteralUndefined, Value: "undefined"}
	case token.IDENT, token.SELF, token.SUPER:
		p.advance()
		return &ast.Ident{NamePos: tok.Pos, Name: tok.Literal}
	case token.TAG:
		return p.parseMarkup()
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		p.advance()
		arr := &ast.ArrayLit{Lbrack: tok.Pos, Elements: p.parseExprList(token.RBRACKET)}
		p.expect(token.RBRACKET)
		return arr
	case token.LBRACE:
		return p.parseObject()
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(tok)))
	return &ast.Literal{ValuePos: tok.Pos, Kind: ast.LiteralUndefined, Value: "undefined"}
}

// object → "{" [expr ":" expr ("," expr ":" expr)*] "}"
func (p *Parser) parseObject() *ast.ObjectLit {
	obj := &ast.ObjectLit{Lbrace: p.advance().Pos}
	for !p.failed() && !p.check(token.RBRACE) {
		key := p.parseExpression()
		p.expect(token.COLON)
		obj.Properties = append(obj.Properties, &ast.Property{Key: key, Value: p.parseExpression()})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return obj
}
