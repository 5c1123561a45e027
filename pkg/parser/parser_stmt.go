package parser

import (
	"fmt"

	"github.com/leapstack-labs/ferin/pkg/ast"
	"github.com/leapstack-labs/ferin/pkg/token"
)

// parseStatement dispatches on the leading token.
//
//nolint:gocyclo // one case per statement form
func (p *Parser) parseStatement() ast.Stmt {
	switch p.token.Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.FN:
		return p.parseFuncDecl(false)
	case token.ASYNC:
		if p.checkPeek(token.FN) {
			p.advance()
			return p.parseFuncDecl(true)
		}
	case token.CLASS:
		return p.parseClassDecl()
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.LOOP:
		return p.parseLoopStmt()
	case token.RET:
		return p.parseReturnStmt()
	case token.IMPORT:
		return p.parseImportDecl()
	case token.EXPORT:
		return p.parseExportDecl()
	case token.COMP:
		return p.parseComponentDecl()
	case token.TAG:
		return &ast.MarkupStmt{Element: p.parseMarkup()}
	case token.BREAK:
		return &ast.BreakStmt{BreakPos: p.advance().Pos}
	case token.CONTINUE:
		return &ast.ContinueStmt{ContinuePos: p.advance().Pos}
	case token.PASS:
		return &ast.PassStmt{PassPos: p.advance().Pos}
	case token.IDENT:
		if p.checkPeek(token.ASSIGN) {
			name := p.advance()
			p.advance() // '='
			return &ast.AssignStmt{
				Target: &ast.Ident{NamePos: name.Pos, Name: name.Literal},
				Value:  p.parseExpression(),
			}
		}
	}
	return p.parseExpressionStatement()
}

// parseExpressionStatement parses an expression, turning `target = value`
// into an assignment when the target is a name or member access.
func (p *Parser) parseExpressionStatement() ast.Stmt {
	x := p.parseExpression()
	if !p.check(token.ASSIGN) {
		return &ast.ExprStmt{X: x}
	}
	switch x.(type) {
	case *ast.Ident, *ast.MemberExpr:
		p.advance()
		return &ast.AssignStmt{Target: x, Value: p.parseExpression()}
	}
	p.addError(fmt.Sprintf(ErrInvalidAssignment, "expression"))
	return nil
}

// var_decl → VAR IDENT [":" IDENT] ["=" expr]
func (p *Parser) parseVarDecl() *ast.VarDecl {
	p.advance() // VAR
	namePos := p.token.Pos
	decl := &ast.VarDecl{NamePos: namePos, Name: p.expectIdent()}
	if p.match(token.COLON) {
		decl.Type = p.expectIdent()
	}
	if p.match(token.ASSIGN) {
		decl.Init = p.parseExpression()
	}
	return decl
}

// if_stmt → IF expr block [NEWLINE* ELSE (if_stmt | block)]
func (p *Parser) parseIfStmt() *ast.IfStmt {
	stmt := &ast.IfStmt{IfPos: p.advance().Pos}
	stmt.Cond = p.parseExpression()
	p.expect(token.COLON)
	stmt.Then = p.parseBlock()

	p.skipNewlines()
	if !p.match(token.ELSE) {
		return stmt
	}
	if p.check(token.IF) {
		stmt.Else = []ast.Stmt{p.parseIfStmt()}
		return stmt
	}
	p.expect(token.COLON)
	stmt.Else = p.parseBlock()
	return stmt
}

// for_stmt → FOR ["("] binding (OF | IN) expr [")"] block
// binding  → "[" IDENT "," IDENT "]" | IDENT ["," IDENT]
func (p *Parser) parseForStmt() *ast.ForStmt {
	stmt := &ast.ForStmt{ForPos: p.advance().Pos}
	paren := p.match(token.LPAREN)

	if p.match(token.LBRACKET) {
		stmt.Value = p.expectIdent()
		p.expect(token.COMMA)
		stmt.Index = p.expectIdent()
		p.expect(token.RBRACKET)
	} else {
		stmt.Value = p.expectIdent()
		if p.match(token.COMMA) {
			stmt.Index = p.expectIdent()
		}
	}

	switch {
	case p.match(token.OF):
		stmt.Kind = ast.ForOf
	case p.match(token.IN):
		stmt.Kind = ast.ForIn
	default:
		p.addError(fmt.Sprintf(ErrExpectedLoopKind, describe(p.token)))
		return stmt
	}

	stmt.Iterable = p.parseExpression()
	if paren {
		p.expect(token.RPAREN)
	}
	p.expect(token.COLON)
	stmt.Body = p.parseBlock()
	return stmt
}

// while_stmt → WHILE expr block
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	stmt := &ast.WhileStmt{WhilePos: p.advance().Pos}
	stmt.Cond = p.parseExpression()
	p.expect(token.COLON)
	stmt.Body = p.parseBlock()
	return stmt
}

// loop_stmt → LOOP block
func (p *Parser) parseLoopStmt() *ast.LoopStmt {
	stmt := &ast.LoopStmt{LoopPos: p.advance().Pos}
	p.expect(token.COLON)
	stmt.Body = p.parseBlock()
	return stmt
}

// return_stmt → RET [expr]
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	stmt := &ast.ReturnStmt{RetPos: p.advance().Pos}
	if !p.atStatementEnd() {
		stmt.Value = p.parseExpression()
	}
	return stmt
}
