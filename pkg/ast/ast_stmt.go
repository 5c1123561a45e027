package ast

import "github.com/leapstack-labs/ferin/pkg/token"

// ---------- Declarations ----------

// VarDecl is `var name [: Type] [= Init]`.
type VarDecl struct {
	NamePos token.Position
	Name    string
	Type    string // optional annotation, not checked
	Init    Expr   // nil when absent
}

// Param is a function parameter: `name [?] [: Type] [= Default]`.
type Param struct {
	Name     string
	Optional bool
	Type     string
	Default  Expr
}

// FuncDecl is a `fn` or `async fn` declaration.
type FuncDecl struct {
	FnPos      token.Position
	Name       string
	Params     []*Param
	ReturnType string
	Async      bool
	Body       []Stmt
}

// ClassMember is implemented by MethodDef and PropertyDef.
type ClassMember interface {
	Node
	memberNode()
}

// MethodDef is a method inside a class body.
type MethodDef struct {
	Func        *FuncDecl
	Static      bool
	Private     bool
	Constructor bool // method named init
}

// PropertyDef is a field inside a class body.
type PropertyDef struct {
	NamePos token.Position
	Name    string
	Type    string
	Init    Expr
	Static  bool
	Private bool
}

// ClassDecl is `class Name [(Super)] [implements A, B]:` plus members.
type ClassDecl struct {
	ClassPos   token.Position
	Name       string
	SuperClass string
	Implements []string
	Members    []ClassMember
}

// ComponentDecl is `comp Name(params):` plus a body.
type ComponentDecl struct {
	CompPos token.Position
	Name    string
	Params  []string
	Body    []Stmt
}

// ---------- Control flow ----------

// IfStmt is an if with an optional else branch. An `else if` chain is
// represented by an Else slice holding a single nested IfStmt.
type IfStmt struct {
	IfPos token.Position
	Cond  Expr
	Then  []Stmt
	Else  []Stmt
}

// ForKind distinguishes the two loop forms.
type ForKind int

// ForKind values.
const (
	ForOf ForKind = iota // key/value enumeration
	ForIn                // counted iteration over an indexable value
)

func (k ForKind) String() string {
	if k == ForIn {
		return "in"
	}
	return "of"
}

// ForStmt is `for binding (of|in) iterable:`.
type ForStmt struct {
	ForPos   token.Position
	Kind     ForKind
	Value    string
	Index    string // empty when not bound
	Iterable Expr
	Body     []Stmt
}

// WhileStmt is `while cond:`.
type WhileStmt struct {
	WhilePos token.Position
	Cond     Expr
	Body     []Stmt
}

// LoopStmt is the unconditional `loop:`.
type LoopStmt struct {
	LoopPos token.Position
	Body    []Stmt
}

// ReturnStmt is `ret [value]`.
type ReturnStmt struct {
	RetPos token.Position
	Value  Expr // nil for a bare ret
}

// BreakStmt is `break`.
type BreakStmt struct {
	BreakPos token.Position
}

// ContinueStmt is `continue`.
type ContinueStmt struct {
	ContinuePos token.Position
}

// PassStmt is the empty statement `pass`.
type PassStmt struct {
	PassPos token.Position
}

// ---------- Modules ----------

// ImportKind selects the import form.
type ImportKind int

// ImportKind values.
const (
	ImportNamed     ImportKind = iota // import { a, b as c } from "x"
	ImportNamespace                   // import * as ns from "x"
	ImportDefault                     // import name from "x"
)

// Specifier binds Local to Imported (import) or Exported (export).
type Specifier struct {
	Name  string // the name as written first
	Alias string // the name after `as`, empty when absent
}

// LocalName returns the alias if present, otherwise the name.
func (s *Specifier) LocalName() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// ImportDecl is an import statement. Source has its quotes removed.
type ImportDecl struct {
	ImportPos  token.Position
	Kind       ImportKind
	Specifiers []*Specifier
	Local      string // namespace or default binding
	Source     string
}

// ExportDecl is one of: `export default <stmt>`, `export { ... } [from "x"]`
// or `export <declaration>`.
type ExportDecl struct {
	ExportPos   token.Position
	Default     bool
	Declaration Stmt
	Specifiers  []*Specifier
	Source      string
}

// ---------- Simple statements ----------

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X Expr
}

// AssignStmt is `target = value`. Target is an Ident or MemberExpr.
type AssignStmt struct {
	Target Expr
	Value  Expr
}

// MarkupStmt is a markup element in statement position.
type MarkupStmt struct {
	Element *MarkupElement
}

// ---------- Node plumbing ----------

func (*VarDecl) stmtNode()       {}
func (*FuncDecl) stmtNode()      {}
func (*ClassDecl) stmtNode()     {}
func (*ComponentDecl) stmtNode() {}
func (*IfStmt) stmtNode()        {}
func (*ForStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()     {}
func (*LoopStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()     {}
func (*ContinueStmt) stmtNode()  {}
func (*PassStmt) stmtNode()      {}
func (*ImportDecl) stmtNode()    {}
func (*ExportDecl) stmtNode()    {}
func (*ExprStmt) stmtNode()      {}
func (*AssignStmt) stmtNode()    {}
func (*MarkupStmt) stmtNode()    {}

func (*MethodDef) memberNode()   {}
func (*PropertyDef) memberNode() {}

// Pos implements Node.
func (s *VarDecl) Pos() token.Position { return s.NamePos }

// Pos implements Node.
func (s *FuncDecl) Pos() token.Position { return s.FnPos }

// Pos implements Node.
func (s *ClassDecl) Pos() token.Position { return s.ClassPos }

// Pos implements Node.
func (s *ComponentDecl) Pos() token.Position { return s.CompPos }

// Pos implements Node.
func (s *IfStmt) Pos() token.Position { return s.IfPos }

// Pos implements Node.
func (s *ForStmt) Pos() token.Position { return s.ForPos }

// Pos implements Node.
func (s *WhileStmt) Pos() token.Position { return s.WhilePos }

// Pos implements Node.
func (s *LoopStmt) Pos() token.Position { return s.LoopPos }

// Pos implements Node.
func (s *ReturnStmt) Pos() token.Position { return s.RetPos }

// Pos implements Node.
func (s *BreakStmt) Pos() token.Position { return s.BreakPos }

// Pos implements Node.
func (s *ContinueStmt) Pos() token.Position { return s.ContinuePos }

// Pos implements Node.
func (s *PassStmt) Pos() token.Position { return s.PassPos }

// Pos implements Node.
func (s *ImportDecl) Pos() token.Position { return s.ImportPos }

// Pos implements Node.
func (s *ExportDecl) Pos() token.Position { return s.ExportPos }

// Pos implements Node.
func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }

// Pos implements Node.
func (s *AssignStmt) Pos() token.Position { return s.Target.Pos() }

// Pos implements Node.
func (s *MarkupStmt) Pos() token.Position { return s.Element.Pos() }

// Pos implements Node.
func (m *MethodDef) Pos() token.Position { return m.Func.FnPos }

// Pos implements Node.
func (m *PropertyDef) Pos() token.Position { return m.NamePos }
