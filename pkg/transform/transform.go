// Package transform turns a ferin AST into JavaScript source.
//
// A transformation runs three passes: Analyze collects facts about the
// program, Validate checks them against the target's entry contract, and the
// emitter writes the JavaScript body. The runtime itself is added later by
// the codegen package.
package transform

import (
	"fmt"

	"github.com/leapstack-labs/ferin/pkg/ast"
	"github.com/leapstack-labs/ferin/pkg/target"
)

// Output is the result of a successful transformation.
type Output struct {
	// JS is the program body: runtime bindings, translated statements and
	// the registration/render epilogue.
	JS string
	// Components lists declared component names in registration order.
	Components []string
	// Analysis is what the analysis pass found.
	Analysis Analysis
}

// Validate checks that the program satisfies tgt's entry contract.
func Validate(tgt target.Target, a Analysis) error {
	switch tgt {
	case target.Web:
		if a.Root == nil {
			return &ValidationError{Target: tgt, Message: ErrWebNeedsRoot}
		}
	case target.App:
		if !a.HasMount {
			return &ValidationError{Target: tgt, Message: ErrAppNeedsMount}
		}
	default:
		return &ValidationError{Target: tgt, Message: fmt.Sprintf("unsupported target %s", tgt)}
	}
	return nil
}

// Transform analyzes, validates and emits prog for tgt. All state lives in
// the call, so concurrent transformations are independent.
func Transform(prog *ast.Program, tgt target.Target) (*Output, error) {
	analysis := Analyze(prog)
	if err := Validate(tgt, analysis); err != nil {
		return nil, err
	}
	return emit(prog, tgt, analysis), nil
}

// Emit translates prog for tgt without checking the entry contract. A web
// program without a root return emits no render call. Used for fragments
// that are not whole programs.
func Emit(prog *ast.Program, tgt target.Target) *Output {
	return emit(prog, tgt, Analyze(prog))
}

func emit(prog *ast.Program, tgt target.Target, analysis Analysis) *Output {
	e := newEmitter(tgt, analysis)
	e.emitProgram(prog)
	return &Output{
		JS:         e.p.String(),
		Components: append([]string(nil), e.components.names()...),
		Analysis:   analysis,
	}
}

// emitter carries per-transformation state.
type emitter struct {
	target     target.Target
	analysis   Analysis
	p          *printer
	components *registry
	loopIndex  int // counter for generated for-in index names
}

func newEmitter(tgt target.Target, a Analysis) *emitter {
	return &emitter{
		target:     tgt,
		analysis:   a,
		p:          newPrinter(),
		components: newRegistry(),
	}
}

// runtimeBindings destructures the names generated code relies on.
var runtimeBindings = map[target.Target]string{
	target.Web: "const { createElement, render, reactive } = FerinRuntime;",
	target.App: "const { Window, process, createElement, reactive } = FerinRuntime;",
}

func (e *emitter) emitProgram(prog *ast.Program) {
	e.p.line(runtimeBindings[e.target])
	e.p.blank()

	for _, stmt := range prog.Body {
		e.emitTopLevel(stmt)
	}

	if e.components.len() > 0 {
		e.p.blank()
		e.p.line("// Component registrations")
		e.p.line("globalThis.FerinComponents = globalThis.FerinComponents || {};")
		for _, name := range e.components.names() {
			e.p.line(fmt.Sprintf("globalThis.FerinComponents[%s] = %s;", quoteJS(name), name))
		}
	}

	if e.target == target.Web && e.analysis.Root != nil {
		e.p.blank()
		e.p.line("// Auto-render the last returned component")
		e.p.line(fmt.Sprintf("render(%s);", e.expr(e.analysis.Root.Value)))
	}
}

// emitTopLevel emits a Program-level statement. On the web target a
// top-level return with a value names the root component; the epilogue
// renders it, so the statement itself emits nothing.
func (e *emitter) emitTopLevel(stmt ast.Stmt) {
	if ret, ok := stmt.(*ast.ReturnStmt); ok && ret.Value != nil && e.target == target.Web {
		return
	}
	e.emitStmt(stmt)
}

// nextIndexName returns a fresh name for an unnamed for-in index.
func (e *emitter) nextIndexName() string {
	name := fmt.Sprintf("_i%d", e.loopIndex)
	e.loopIndex++
	return name
}
