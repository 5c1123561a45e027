package lsp

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ferin/pkg/ast"
	"github.com/leapstack-labs/ferin/pkg/token"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SymbolKind classifies a declaration.
type SymbolKind int

// Symbol kinds.
const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolClass
	SymbolMethod
	SymbolProperty
	SymbolComponent
	SymbolImport
)

var symbolKindNames = [...]string{"var", "fn", "class", "method", "property", "comp", "import"}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "symbol"
}

func (k SymbolKind) completionKind() protocol.CompletionItemKind {
	switch k {
	case SymbolFunction:
		return protocol.CompletionItemKindFunction
	case SymbolClass:
		return protocol.CompletionItemKindClass
	case SymbolMethod:
		return protocol.CompletionItemKindMethod
	case SymbolProperty:
		return protocol.CompletionItemKindProperty
	case SymbolComponent:
		return protocol.CompletionItemKindStruct
	case SymbolImport:
		return protocol.CompletionItemKindModule
	}
	return protocol.CompletionItemKindVariable
}

// Symbol is a named declaration found in a document.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Signature string
	Container string         // enclosing class for methods and properties
	Pos       token.Position // position of the declaring keyword or name
	TopLevel  bool
}

// IndexSymbols collects the declarations of prog in source order.
// Function and component parameters are not indexed.
func IndexSymbols(prog *ast.Program) []Symbol {
	top := make(map[ast.Node]bool, len(prog.Body))
	for _, stmt := range prog.Body {
		top[stmt] = true
		if exp, ok := stmt.(*ast.ExportDecl); ok && exp.Declaration != nil {
			top[exp.Declaration] = true
		}
	}

	var syms []Symbol
	var current ast.Node
	add := func(s Symbol) {
		s.TopLevel = top[current] && s.Container == ""
		syms = append(syms, s)
	}

	var visit func(n ast.Node) bool
	visit = func(n ast.Node) bool {
		current = n
		switch n := n.(type) {
		case *ast.VarDecl:
			add(Symbol{Name: n.Name, Kind: SymbolVariable, Signature: "var " + n.Name + annotation(n.Type), Pos: n.NamePos})

		case *ast.FuncDecl:
			add(Symbol{Name: n.Name, Kind: SymbolFunction, Signature: funcSignature(n), Pos: n.FnPos})

		case *ast.ComponentDecl:
			add(Symbol{
				Name:      n.Name,
				Kind:      SymbolComponent,
				Signature: fmt.Sprintf("comp %s(%s)", n.Name, strings.Join(n.Params, ", ")),
				Pos:       n.CompPos,
			})

		case *ast.ClassDecl:
			add(Symbol{Name: n.Name, Kind: SymbolClass, Signature: classSignature(n), Pos: n.ClassPos})
			for _, m := range n.Members {
				switch m := m.(type) {
				case *ast.MethodDef:
					add(Symbol{
						Name:      m.Func.Name,
						Kind:      SymbolMethod,
						Signature: funcSignature(m.Func),
						Container: n.Name,
						Pos:       m.Func.FnPos,
					})
					for _, stmt := range m.Func.Body {
						ast.Walk(stmt, visit)
					}
				case *ast.PropertyDef:
					add(Symbol{
						Name:      m.Name,
						Kind:      SymbolProperty,
						Signature: m.Name + annotation(m.Type),
						Container: n.Name,
						Pos:       m.NamePos,
					})
				}
			}
			return false

		case *ast.ImportDecl:
			from := fmt.Sprintf(" from %q", n.Source)
			if n.Local != "" {
				add(Symbol{Name: n.Local, Kind: SymbolImport, Signature: "import " + importLocal(n) + from, Pos: n.ImportPos})
			}
			for _, spec := range n.Specifiers {
				add(Symbol{Name: spec.LocalName(), Kind: SymbolImport, Signature: "import { " + specText(spec) + " }" + from, Pos: n.ImportPos})
			}
		}
		return true
	}

	ast.Walk(prog, visit)
	return syms
}

func annotation(typ string) string {
	if typ == "" {
		return ""
	}
	return ": " + typ
}

func funcSignature(fn *ast.FuncDecl) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name
		if p.Optional {
			params[i] += "?"
		}
		params[i] += annotation(p.Type)
	}

	var b strings.Builder
	if fn.Async {
		b.WriteString("async ")
	}
	fmt.Fprintf(&b, "fn %s(%s)", fn.Name, strings.Join(params, ", "))
	if fn.ReturnType != "" {
		b.WriteString(": " + fn.ReturnType)
	}
	return b.String()
}

func classSignature(c *ast.ClassDecl) string {
	sig := "class " + c.Name
	if c.SuperClass != "" {
		sig += "(" + c.SuperClass + ")"
	}
	if len(c.Implements) > 0 {
		sig += " implements " + strings.Join(c.Implements, ", ")
	}
	return sig
}

func importLocal(n *ast.ImportDecl) string {
	if n.Kind == ast.ImportNamespace {
		return "* as " + n.Local
	}
	return n.Local
}

func specText(s *ast.Specifier) string {
	if s.Alias != "" {
		return s.Name + " as " + s.Alias
	}
	return s.Name
}

// lookupSymbol returns the symbol named name, preferring a top-level
// declaration over nested ones.
func lookupSymbol(syms []Symbol, name string) (Symbol, bool) {
	var found Symbol
	ok := false
	for _, s := range syms {
		if s.Name != name {
			continue
		}
		if s.TopLevel {
			return s, true
		}
		if !ok {
			found, ok = s, true
		}
	}
	return found, ok
}

// nameOffset returns the byte offset of name at or after the symbol's
// declaring keyword.
func nameOffset(content string, s Symbol) int {
	start := max(0, min(s.Pos.Offset, len(content)))
	if i := strings.Index(content[start:], s.Name); i >= 0 {
		return start + i
	}
	return start
}
