package parser

import (
	"fmt"

	"github.com/leapstack-labs/ferin/pkg/ast"
	"github.com/leapstack-labs/ferin/pkg/token"
)

// func_decl → FN IDENT "(" params ")" ":" [IDENT ":"] block
//
// The colon after ")" is always consumed. When an identifier follows it,
// that identifier is the return type and a second colon opens the body.
func (p *Parser) parseFuncDecl(async bool) *ast.FuncDecl {
	fn := &ast.FuncDecl{FnPos: p.advance().Pos, Async: async}
	fn.Name = p.expectIdent()
	p.expect(token.LPAREN)
	fn.Params = p.parseParams()
	p.expect(token.RPAREN)

	if p.match(token.COLON) {
		if p.check(token.IDENT) {
			fn.ReturnType = p.advance().Literal
			p.expect(token.COLON)
		}
	} else {
		p.expect(token.COLON)
	}
	fn.Body = p.parseBlock()
	return fn
}

// params → [param ("," param)*]
// param  → IDENT ["?"] [":" IDENT] ["=" expr]
func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	if p.check(token.RPAREN) {
		return params
	}
	for !p.failed() {
		param := &ast.Param{Name: p.expectIdent()}
		param.Optional = p.match(token.QUESTION)
		if p.match(token.COLON) {
			param.Type = p.expectIdent()
		}
		if p.match(token.ASSIGN) {
			param.Default = p.parseExpression()
		}
		params = append(params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	return params
}

// class_decl → CLASS IDENT ["(" IDENT ")"] [IMPLEMENTS IDENT ("," IDENT)*] ":" members
func (p *Parser) parseClassDecl() *ast.ClassDecl {
	class := &ast.ClassDecl{ClassPos: p.advance().Pos}
	class.Name = p.expectIdent()
	if p.match(token.LPAREN) {
		class.SuperClass = p.expectIdent()
		p.expect(token.RPAREN)
	}
	if p.match(token.IMPLEMENTS) {
		for !p.failed() {
			class.Implements = append(class.Implements, p.expectIdent())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.COLON)
	p.block(func() {
		if m := p.parseClassMember(); m != nil {
			class.Members = append(class.Members, m)
		}
	})
	return class
}

// member → [STATIC] [PRIVATE | PUBLIC] ([ASYNC] func_decl | IDENT [":" IDENT] ["=" expr]) | PASS
func (p *Parser) parseClassMember() ast.ClassMember {
	if p.match(token.PASS) {
		return nil
	}
	static := p.match(token.STATIC)
	private := p.match(token.PRIVATE)
	if !private {
		p.match(token.PUBLIC)
	}

	switch {
	case p.check(token.FN):
		fn := p.parseFuncDecl(false)
		return &ast.MethodDef{Func: fn, Static: static, Private: private, Constructor: fn.Name == "init"}
	case p.check(token.ASYNC) && p.checkPeek(token.FN):
		p.advance()
		fn := p.parseFuncDecl(true)
		return &ast.MethodDef{Func: fn, Static: static, Private: private, Constructor: fn.Name == "init"}
	case p.check(token.IDENT):
		name := p.advance()
		prop := &ast.PropertyDef{NamePos: name.Pos, Name: name.Literal, Static: static, Private: private}
		if p.match(token.COLON) {
			prop.Type = p.expectIdent()
		}
		if p.match(token.ASSIGN) {
			prop.Init = p.parseExpression()
		}
		return prop
	}
	p.addError(fmt.Sprintf(ErrClassMember, describe(p.token)))
	return nil
}

// comp_decl → COMP IDENT "(" [IDENT ("," IDENT)*] ")" ":" block
func (p *Parser) parseComponentDecl() *ast.ComponentDecl {
	comp := &ast.ComponentDecl{CompPos: p.advance().Pos}
	comp.Name = p.expectIdent()
	p.expect(token.LPAREN)
	if !p.check(token.RPAREN) {
		for !p.failed() {
			comp.Params = append(comp.Params, p.expectIdent())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.COLON)
	comp.Body = p.parseBlock()
	return comp
}

// import_decl → IMPORT ("{" specifiers "}" | "*" AS IDENT | IDENT) FROM STRING
func (p *Parser) parseImportDecl() *ast.ImportDecl {
	decl := &ast.ImportDecl{ImportPos: p.advance().Pos}
	switch {
	case p.match(token.LBRACE):
		decl.Kind = ast.ImportNamed
		decl.Specifiers = p.parseSpecifiers()
		p.expect(token.RBRACE)
	case p.match(token.STAR):
		decl.Kind = ast.ImportNamespace
		p.expect(token.AS)
		decl.Local = p.expectIdent()
	default:
		decl.Kind = ast.ImportDefault
		decl.Local = p.expectIdent()
	}
	p.expect(token.FROM)
	src, _ := p.expect(token.STRING)
	decl.Source = unquote(src.Literal)
	return decl
}

// export_decl → EXPORT (DEFAULT statement | "{" specifiers "}" [FROM STRING] | declaration)
func (p *Parser) parseExportDecl() *ast.ExportDecl {
	decl := &ast.ExportDecl{ExportPos: p.advance().Pos}
	switch {
	case p.match(token.DEFAULT):
		decl.Default = true
		decl.Declaration = p.parseStatement()
	case p.match(token.LBRACE):
		decl.Specifiers = p.parseSpecifiers()
		p.expect(token.RBRACE)
		if p.match(token.FROM) {
			src, _ := p.expect(token.STRING)
			decl.Source = unquote(src.Literal)
		}
	default:
		switch p.token.Type {
		case token.VAR, token.FN, token.ASYNC, token.CLASS, token.COMP:
			decl.Declaration = p.parseStatement()
		default:
			p.addError(fmt.Sprintf(ErrExportTarget, describe(p.token)))
		}
	}
	return decl
}

// specifiers → [IDENT [AS IDENT] ("," IDENT [AS IDENT])*]
func (p *Parser) parseSpecifiers() []*ast.Specifier {
	var specs []*ast.Specifier
	for !p.failed() && p.check(token.IDENT) {
		spec := &ast.Specifier{Name: p.advance().Literal}
		if p.match(token.AS) {
			spec.Alias = p.expectIdent()
		}
		specs = append(specs, spec)
		if !p.match(token.COMMA) {
			break
		}
	}
	return specs
}
