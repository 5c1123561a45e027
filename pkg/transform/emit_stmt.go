package transform

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ferin/pkg/ast"
)

// loopYield hands control back to the event loop after each `loop` pass.
// It closes the body, so a pass that ends in `continue` skips it.
const loopYield = "await new Promise(resolve => setTimeout(resolve, 0));"

func (e *emitter) emitStmts(list []ast.Stmt) {
	for _, s := range list {
		e.emitStmt(s)
	}
}

//nolint:gocyclo // one case per statement kind
func (e *emitter) emitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		e.emitVarDecl(s)
	case *ast.FuncDecl:
		e.declSpacing(func() { e.emitFunc(s) })
	case *ast.ClassDecl:
		e.declSpacing(func() { e.emitClass(s) })
	case *ast.ComponentDecl:
		e.declSpacing(func() { e.emitComponent(s) })
	case *ast.IfStmt:
		e.emitIf(s)
	case *ast.ForStmt:
		e.emitFor(s)
	case *ast.WhileStmt:
		e.p.block(fmt.Sprintf("while (%s)", e.expr(s.Cond)), func() { e.emitStmts(s.Body) })
	case *ast.LoopStmt:
		e.p.block("while (true)", func() {
			e.emitStmts(s.Body)
			e.p.line(loopYield)
		})
	case *ast.ReturnStmt:
		if s.Value == nil {
			e.p.line("return;")
			return
		}
		e.p.line(fmt.Sprintf("return %s;", e.expr(s.Value)))
	case *ast.BreakStmt:
		e.p.line("break;")
	case *ast.ContinueStmt:
		e.p.line("continue;")
	case *ast.PassStmt:
		// nothing to emit
	case *ast.ImportDecl:
		e.emitImport(s)
	case *ast.ExportDecl:
		e.emitExport(s)
	case *ast.ExprStmt:
		e.p.line(e.expr(s.X) + ";")
	case *ast.AssignStmt:
		e.p.line(fmt.Sprintf("%s = %s;", e.expr(s.Target), e.expr(s.Value)))
	case *ast.MarkupStmt:
		e.p.line(e.markup(s.Element) + ";")
	}
}

// declSpacing surrounds top-level declarations with blank lines.
func (e *emitter) declSpacing(emit func()) {
	if e.p.depth == 0 {
		e.p.blank()
	}
	emit()
	if e.p.depth == 0 {
		e.p.blank()
	}
}

func (e *emitter) emitVarDecl(s *ast.VarDecl) {
	if s.Init == nil {
		e.p.line(fmt.Sprintf("let %s;", s.Name))
		return
	}
	e.p.line(fmt.Sprintf("let %s = reactive(%s);", s.Name, e.expr(s.Init)))
}

func (e *emitter) params(params []*ast.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.Default != nil {
			parts = append(parts, fmt.Sprintf("%s = %s", p.Name, e.expr(p.Default)))
			continue
		}
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) emitFunc(fn *ast.FuncDecl) {
	header := fmt.Sprintf("function %s(%s)", fn.Name, e.params(fn.Params))
	if fn.Async {
		header = "async " + header
	}
	e.p.block(header, func() { e.emitStmts(fn.Body) })
}

func (e *emitter) emitClass(c *ast.ClassDecl) {
	header := "class " + c.Name
	if c.SuperClass != "" {
		header += " extends " + c.SuperClass
	}
	e.p.block(header, func() {
		for _, m := range c.Members {
			switch m := m.(type) {
			case *ast.PropertyDef:
				e.emitProperty(m)
			case *ast.MethodDef:
				e.emitMethod(m)
			}
		}
	})
}

func (e *emitter) emitProperty(prop *ast.PropertyDef) {
	var b strings.Builder
	if prop.Static {
		b.WriteString("static ")
	}
	b.WriteString(prop.Name)
	if prop.Init != nil {
		b.WriteString(" = ")
		b.WriteString(e.expr(prop.Init))
	}
	b.WriteString(";")
	e.p.line(b.String())
}

func (e *emitter) emitMethod(m *ast.MethodDef) {
	var b strings.Builder
	if m.Static {
		b.WriteString("static ")
	}
	if m.Func.Async {
		b.WriteString("async ")
	}
	if m.Constructor {
		b.WriteString("constructor")
	} else {
		b.WriteString(m.Func.Name)
	}
	fmt.Fprintf(&b, "(%s)", e.params(m.Func.Params))
	e.p.block(b.String(), func() { e.emitStmts(m.Func.Body) })
}

func (e *emitter) emitComponent(c *ast.ComponentDecl) {
	e.components.add(c)
	e.p.block(fmt.Sprintf("function %s(props, children)", c.Name), func() {
		for _, param := range c.Params {
			if param == "props" || param == "children" {
				continue
			}
			e.p.line(fmt.Sprintf("let %s = reactive(props.%s);", param, param))
		}
		hasReturn := false
		for _, stmt := range c.Body {
			if _, ok := stmt.(*ast.ReturnStmt); ok {
				hasReturn = true
			}
			e.emitStmt(stmt)
		}
		if !hasReturn {
			e.p.line("return null;")
		}
	})
}

func (e *emitter) emitIf(s *ast.IfStmt) {
	e.p.line(fmt.Sprintf("if (%s) {", e.expr(s.Cond)))
	for {
		e.p.indent()
		e.emitStmts(s.Then)
		e.p.dedent()
		if len(s.Else) == 0 {
			e.p.line("}")
			return
		}
		if next, ok := s.Else[0].(*ast.IfStmt); ok && len(s.Else) == 1 {
			e.p.line(fmt.Sprintf("} else if (%s) {", e.expr(next.Cond)))
			s = next
			continue
		}
		e.p.line("} else {")
		e.p.indent()
		e.emitStmts(s.Else)
		e.p.dedent()
		e.p.line("}")
		return
	}
}

// emitFor emits both loop forms. `of` enumerates key/value pairs; `in`
// counts over an indexable value, writing the iterable expression in both
// the bound check and the element access.
func (e *emitter) emitFor(s *ast.ForStmt) {
	iter := e.expr(s.Iterable)
	if s.Kind == ast.ForOf {
		binding := s.Value
		if s.Index != "" {
			binding += ", " + s.Index
		}
		e.p.block(fmt.Sprintf("for (const [%s] of Object.entries(%s))", binding, iter), func() {
			e.emitStmts(s.Body)
		})
		return
	}

	idx := s.Index
	if idx == "" {
		idx = e.nextIndexName()
	}
	header := fmt.Sprintf("for (let %s = 0; %s < %s.length; %s++)", idx, idx, iter, idx)
	e.p.block(header, func() {
		e.p.line(fmt.Sprintf("const %s = %s[%s];", s.Value, iter, idx))
		e.emitStmts(s.Body)
	})
}

func (e *emitter) emitImport(s *ast.ImportDecl) {
	require := fmt.Sprintf("require(%s)", quoteJS(s.Source))
	switch s.Kind {
	case ast.ImportDefault, ast.ImportNamespace:
		e.p.line(fmt.Sprintf("const %s = %s;", s.Local, require))
	case ast.ImportNamed:
		parts := make([]string, 0, len(s.Specifiers))
		for _, spec := range s.Specifiers {
			if spec.Alias != "" {
				parts = append(parts, spec.Name+": "+spec.Alias)
				continue
			}
			parts = append(parts, spec.Name)
		}
		e.p.line(fmt.Sprintf("const { %s } = %s;", strings.Join(parts, ", "), require))
	}
}

func (e *emitter) emitExport(s *ast.ExportDecl) {
	if s.Declaration == nil {
		for _, spec := range s.Specifiers {
			value := spec.Name
			if s.Source != "" {
				value = fmt.Sprintf("require(%s).%s", quoteJS(s.Source), spec.Name)
			}
			e.p.line(fmt.Sprintf("module.exports.%s = %s;", spec.LocalName(), value))
		}
		return
	}

	name := declaredName(s.Declaration)
	if s.Default {
		switch d := s.Declaration.(type) {
		case *ast.ExprStmt:
			e.p.line(fmt.Sprintf("module.exports = %s;", e.expr(d.X)))
			return
		case *ast.MarkupStmt:
			e.p.line(fmt.Sprintf("module.exports = %s;", e.markup(d.Element)))
			return
		}
		e.emitStmt(s.Declaration)
		if name != "" {
			e.p.line(fmt.Sprintf("module.exports = %s;", name))
		}
		return
	}

	e.emitStmt(s.Declaration)
	if name != "" {
		e.p.line(fmt.Sprintf("module.exports.%s = %s;", name, name))
	}
}

// declaredName returns the binding a declaration introduces, if any.
func declaredName(stmt ast.Stmt) string {
	switch d := stmt.(type) {
	case *ast.VarDecl:
		return d.Name
	case *ast.FuncDecl:
		return d.Name
	case *ast.ClassDecl:
		return d.Name
	case *ast.ComponentDecl:
		return d.Name
	}
	return ""
}
