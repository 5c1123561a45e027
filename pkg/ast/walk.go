package ast

// Walk traverses an AST depth-first and calls fn for each node.
// If fn returns false, the node's children are skipped.
func Walk(node Node, fn func(node Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	walkNode(node, fn)
}

func walkStmts(list []Stmt, fn func(Node) bool) {
	for _, s := range list {
		Walk(s, fn)
	}
}

func walkExpr(e Expr, fn func(Node) bool) {
	if e != nil {
		Walk(e, fn)
	}
}

//nolint:gocyclo // one case per node kind
func walkNode(node Node, fn func(node Node) bool) {
	switch n := node.(type) {
	case *Program:
		walkStmts(n.Body, fn)

	case *VarDecl:
		walkExpr(n.Init, fn)

	case *FuncDecl:
		for _, p := range n.Params {
			walkExpr(p.Default, fn)
		}
		walkStmts(n.Body, fn)

	case *ClassDecl:
		for _, m := range n.Members {
			Walk(m, fn)
		}

	case *MethodDef:
		Walk(n.Func, fn)

	case *PropertyDef:
		walkExpr(n.Init, fn)

	case *ComponentDecl:
		walkStmts(n.Body, fn)

	case *IfStmt:
		walkExpr(n.Cond, fn)
		walkStmts(n.Then, fn)
		walkStmts(n.Else, fn)

	case *ForStmt:
		walkExpr(n.Iterable, fn)
		walkStmts(n.Body, fn)

	case *WhileStmt:
		walkExpr(n.Cond, fn)
		walkStmts(n.Body, fn)

	case *LoopStmt:
		walkStmts(n.Body, fn)

	case *ReturnStmt:
		walkExpr(n.Value, fn)

	case *ExportDecl:
		if n.Declaration != nil {
			Walk(n.Declaration, fn)
		}

	case *ExprStmt:
		walkExpr(n.X, fn)

	case *AssignStmt:
		walkExpr(n.Target, fn)
		walkExpr(n.Value, fn)

	case *MarkupStmt:
		Walk(n.Element, fn)

	case *BinaryExpr:
		walkExpr(n.Left, fn)
		walkExpr(n.Right, fn)

	case *UnaryExpr:
		walkExpr(n.Operand, fn)

	case *CallExpr:
		walkExpr(n.Callee, fn)
		for _, a := range n.Args {
			walkExpr(a, fn)
		}

	case *MemberExpr:
		walkExpr(n.Object, fn)
		walkExpr(n.Index, fn)

	case *ArrayLit:
		for _, e := range n.Elements {
			walkExpr(e, fn)
		}

	case *ObjectLit:
		for _, p := range n.Properties {
			walkExpr(p.Key, fn)
			walkExpr(p.Value, fn)
		}

	case *MarkupElement:
		for _, a := range n.Attributes {
			walkExpr(a.Expr, fn)
		}
		for _, c := range n.Children {
			Walk(c, fn)
		}

	case *MarkupExpr:
		walkExpr(n.X, fn)
	}
}

// Inspect is Walk for callers that never prune.
func Inspect(node Node, fn func(node Node)) {
	Walk(node, func(n Node) bool {
		fn(n)
		return true
	})
}
