package transform

import "github.com/leapstack-labs/ferin/pkg/ast"

// Analysis holds the facts validation needs about a program.
type Analysis struct {
	// Root is the last top-level return that carries a value, or nil.
	Root *ast.ReturnStmt
	// HasMount is true when a process.mount(...) call is reachable.
	HasMount bool
}

// Analyze collects the root return and mount facts for prog.
//
// Function, if, for, while, loop and export bodies are searched for mount
// calls. Class and component bodies are not.
func Analyze(prog *ast.Program) Analysis {
	var a Analysis
	for _, stmt := range prog.Body {
		if ret, ok := stmt.(*ast.ReturnStmt); ok && ret.Value != nil {
			a.Root = ret
		}
		a.visitStmt(stmt)
	}
	return a
}

func (a *Analysis) visitStmts(list []ast.Stmt) {
	for _, s := range list {
		a.visitStmt(s)
	}
}

func (a *Analysis) visitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ClassDecl, *ast.ComponentDecl:
		return
	case *ast.FuncDecl:
		for _, p := range s.Params {
			a.visitExpr(p.Default)
		}
		a.visitStmts(s.Body)
	case *ast.IfStmt:
		a.visitExpr(s.Cond)
		a.visitStmts(s.Then)
		a.visitStmts(s.Else)
	case *ast.ForStmt:
		a.visitExpr(s.Iterable)
		a.visitStmts(s.Body)
	case *ast.WhileStmt:
		a.visitExpr(s.Cond)
		a.visitStmts(s.Body)
	case *ast.LoopStmt:
		a.visitStmts(s.Body)
	case *ast.ExportDecl:
		if s.Declaration != nil {
			a.visitStmt(s.Declaration)
		}
	case *ast.VarDecl:
		a.visitExpr(s.Init)
	case *ast.ReturnStmt:
		a.visitExpr(s.Value)
	case *ast.ExprStmt:
		a.visitExpr(s.X)
	case *ast.AssignStmt:
		a.visitExpr(s.Target)
		a.visitExpr(s.Value)
	case *ast.MarkupStmt:
		a.visitExpr(s.Element)
	}
}

func (a *Analysis) visitExpr(x ast.Expr) {
	if x == nil || a.HasMount {
		return
	}
	ast.Walk(x, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok && isMountCall(call) {
			a.HasMount = true
		}
		return !a.HasMount
	})
}

// isMountCall matches process.mount(...).
func isMountCall(call *ast.CallExpr) bool {
	m, ok := call.Callee.(*ast.MemberExpr)
	if !ok || m.Computed || m.Property != "mount" {
		return false
	}
	obj, ok := m.Object.(*ast.Ident)
	return ok && obj.Name == "process"
}
