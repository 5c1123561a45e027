package lsp

import (
	"errors"
	"path/filepath"

	"github.com/leapstack-labs/ferin/pkg/compiler"
	"github.com/leapstack-labs/ferin/pkg/parser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// analyze compiles doc and refreshes its symbol index. The entry file gets
// the full pipeline including target validation; other files are only
// parsed, since they are not expected to return a root or mount a window.
// The returned slice is empty, never nil, so the client clears stale
// diagnostics.
func (s *Server) analyze(doc *Document) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}

	prog, err := parser.Parse(doc.Content)
	if err != nil {
		s.logger.Debug("parse failed", "uri", doc.URI, "error", err)
		return append(diags, s.diagnosticFor(doc, err))
	}
	s.setSymbols(doc.URI, IndexSymbols(prog))

	if s.isEntry(doc.URI) {
		if _, err := compiler.Compile(doc.Content, s.target, compiler.WithLogger(s.logger)); err != nil {
			diags = append(diags, s.diagnosticFor(doc, err))
		}
	}
	return diags
}

// diagnosticFor converts a compile failure into a diagnostic. Lexical and
// syntax errors point at the offending token; validation errors, which have
// no position, cover the first line.
func (s *Server) diagnosticFor(doc *Document, err error) protocol.Diagnostic {
	var cerr *compiler.Error
	if !errors.As(err, &cerr) {
		cerr = &compiler.Error{Stage: "parse", Err: err}
	}

	d := protocol.Diagnostic{
		Severity: ptr(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: cerr.Kind()},
		Source:   ptr(lspName),
		Message:  cerr.Err.Error(),
	}
	if pos, ok := cerr.Position(); ok {
		start := doc.SourcePosition(pos)
		d.Range = doc.TokenRange(doc.PositionToOffset(start))
	} else {
		d.Range = protocol.Range{End: doc.OffsetToPosition(doc.lineEnd(0))}
	}
	return d
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, doc *Document) {
	version := protocol.UInteger(max(doc.Version, 0)) //nolint:gosec // G115: clamped to non-negative
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &version,
		Diagnostics: s.analyze(doc),
	})
}

func (s *Server) isEntry(uri string) bool {
	if s.entryPath == "" {
		return false
	}
	path, err := filepath.Abs(URIToPath(uri))
	if err != nil {
		return false
	}
	return path == s.entryPath
}
