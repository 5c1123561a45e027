// Package compiler is the entry point of the ferin toolchain.
//
//	res, err := compiler.Compile(src, compiler.Web)
//	if err != nil {
//	    // err.Error() starts with "Compilation failed: "
//	}
//	page.Script = res.JS
//
// Compile runs the pipeline in order: tokenize (with the indentation pass),
// parse, transform (analysis, validation, emission) and wrap. Every call owns
// its state, so Compile is safe for concurrent use.
package compiler

import (
	"log/slog"
	"time"

	"github.com/leapstack-labs/ferin/pkg/codegen"
	"github.com/leapstack-labs/ferin/pkg/parser"
	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/leapstack-labs/ferin/pkg/transform"
)

// Target selects the runtime a program is compiled for.
type Target = target.Target

// Supported targets.
const (
	Web = target.Web
	App = target.App
)

// ParseTarget converts "web" or "app" to a Target.
func ParseTarget(s string) (Target, error) {
	return target.Parse(s)
}

// Result is a compiled program. CSS is empty when the target ships none.
// A Result is never modified after Compile returns it.
type Result struct {
	JS         string   `json:"js"`
	CSS        string   `json:"css,omitempty"`
	Components []string `json:"components,omitempty"`
}

// HasCSS reports whether the result carries a stylesheet.
func (r *Result) HasCSS() bool {
	return r.CSS != ""
}

type options struct {
	logger *slog.Logger
}

// Option configures a compilation.
type Option func(*options)

// WithLogger sets the logger used for stage debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Compile compiles source for tgt. On failure the returned error is a
// *Error wrapping the first *parser.LexError, *parser.ParseError or
// *transform.ValidationError; no partial output is produced.
func Compile(source string, tgt Target, opts ...Option) (*Result, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With("target", tgt.String())
	start := time.Now()

	tokens, err := parser.Tokenize(source)
	if err != nil {
		return nil, fail(log, "tokenize", err)
	}
	log.Debug("tokenized", "tokens", len(tokens))

	prog, err := parser.NewParser(tokens).ParseProgram()
	if err != nil {
		return nil, fail(log, "parse", err)
	}
	log.Debug("parsed", "statements", len(prog.Body))

	out, err := transform.Transform(prog, tgt)
	if err != nil {
		return nil, fail(log, "transform", err)
	}
	log.Debug("transformed", "components", len(out.Components))

	art := codegen.Wrap(out.JS, tgt)
	log.Debug("compiled",
		"js_bytes", len(art.JS),
		"css_bytes", len(art.CSS),
		"duration", time.Since(start))

	return &Result{JS: art.JS, CSS: art.CSS, Components: out.Components}, nil
}

func fail(log *slog.Logger, stage string, err error) error {
	log.Debug("compilation failed", "stage", stage, "error", err)
	return &Error{Stage: stage, Err: err}
}
