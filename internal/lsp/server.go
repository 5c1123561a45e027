// Package lsp implements a Language Server Protocol server for ferin
// sources: full document sync, diagnostics, completion, hover and go to
// definition. The transport is glsp over stdio.
package lsp

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/leapstack-labs/ferin/internal/cli/config"
	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	// Registers the commonlog backend used by glsp.
	_ "github.com/tliron/commonlog/simple"
)

const lspName = "ferin"

// Server implements the Language Server Protocol for ferin sources.
type Server struct {
	documents *DocumentStore

	symbols   map[string][]Symbol // last successfully parsed declarations per URI
	symbolsMu sync.RWMutex

	// Compilation settings, resolved from ferin.yaml on initialize
	target      target.Target
	entryPath   string
	projectRoot string
	version     string

	handler  protocol.Handler
	logger   *slog.Logger
	debug    bool
	shutdown bool
	exit     func(code int)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Logs must not go to the protocol stream.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTarget sets the compile target used until initialize reads ferin.yaml.
func WithTarget(t target.Target) Option {
	return func(s *Server) { s.target = t }
}

// WithVersion sets the version reported in serverInfo.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithDebug enables glsp's protocol trace on stderr.
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// NewServer creates a server. Call Run to serve stdio.
func NewServer(opts ...Option) *Server {
	s := &Server{
		documents: NewDocumentStore(),
		symbols:   make(map[string][]Symbol),
		target:    target.Web,
		logger:    slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
		exit:      os.Exit,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdownHandler,
		Exit:        s.exitHandler,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.didOpen,
		TextDocumentDidChange: s.didChange,
		TextDocumentDidSave:   s.didSave,
		TextDocumentDidClose:  s.didClose,

		TextDocumentCompletion: s.completion,
		TextDocumentHover:      s.hover,
		TextDocumentDefinition: s.definition,
	}
	return s
}

// Run serves the protocol on stdin and stdout until the client exits.
func (s *Server) Run() error {
	verbosity := 0
	if s.debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	s.logger.Info("ferin language server starting", "target", s.target.String())
	return glspserver.NewServer(&s.handler, lspName, s.debug).RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.RootURI != nil && *params.RootURI != "" {
		s.projectRoot = URIToPath(*params.RootURI)
		s.loadProjectConfig()
	}
	if opts, ok := params.InitializationOptions.(map[string]any); ok {
		if name, ok := opts["target"].(string); ok && name != "" {
			if t, err := target.Parse(name); err == nil {
				s.target = t
			} else {
				s.logger.Warn("ignoring initialization option", "error", err)
			}
		}
	}

	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: ptr(true),
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: ptr(true)},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{TriggerCharacters: []string{".", "/"}}
	capabilities.HoverProvider = true
	capabilities.DefinitionProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	s.logger.Info("server initialized", "target", s.target.String(), "entry", s.entryPath)
	return nil
}

func (s *Server) shutdownHandler(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	s.shutdown = true
	return nil
}

// exitHandler ends the process with status 0 after shutdown and 1 otherwise.
func (s *Server) exitHandler(_ *glsp.Context) error {
	code := 0
	if !s.shutdown {
		code = 1
	}
	s.logger.Info("client requested exit", "code", code)
	s.exit(code)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// loadProjectConfig reads ferin.yaml from the project root for the target
// and entry file. A missing or invalid file keeps the current settings.
func (s *Server) loadProjectConfig() {
	path := filepath.Join(s.projectRoot, config.ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		s.logger.Info("no project config", "path", path)
		return
	}

	cfg, err := config.LoadConfig(path, nil)
	if err != nil {
		s.logger.Warn("failed to load project config", "path", path, "error", err)
		return
	}
	s.target = cfg.BuildTarget()
	if entry, err := filepath.Abs(cfg.EntryPath("")); err == nil {
		s.entryPath = entry
	}
	s.logger.Info("loaded project config", "path", path, "target", s.target.String())
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	s.publishDiagnostics(ctx, s.documents.Open(item.URI, item.Text, item.Version))
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change holds the whole document.
	whole, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		s.logger.Warn("ignoring incremental change", "uri", params.TextDocument.URI)
		return nil
	}
	doc := s.documents.Update(params.TextDocument.URI, whole.Text, params.TextDocument.Version)
	if doc == nil {
		s.logger.Warn("change for unopened document", "uri", params.TextDocument.URI)
		return nil
	}
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	// Saving ferin.yaml may change the target or entry file.
	if filepath.Base(URIToPath(uri)) == config.ConfigFileName && s.projectRoot != "" {
		s.loadProjectConfig()
		for _, open := range s.documents.List() {
			s.publishDiagnostics(ctx, s.documents.Get(open))
		}
		return nil
	}

	if prev := s.documents.Get(uri); prev != nil && params.Text != nil {
		s.publishDiagnostics(ctx, s.documents.Update(prev.URI, *params.Text, prev.Version))
	}
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.documents.Close(uri)
	s.symbolsMu.Lock()
	delete(s.symbols, uri)
	s.symbolsMu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) completion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	return &protocol.CompletionList{Items: s.getCompletions(params.TextDocument.URI, params.Position)}, nil
}

func (s *Server) hover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return s.getHover(params.TextDocument.URI, params.Position), nil
}

func (s *Server) definition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	if loc := s.getDefinition(params.TextDocument.URI, params.Position); loc != nil {
		return loc, nil
	}
	return nil, nil
}

func (s *Server) setSymbols(uri string, syms []Symbol) {
	s.symbolsMu.Lock()
	defer s.symbolsMu.Unlock()
	s.symbols[uri] = syms
}

func (s *Server) getSymbols(uri string) []Symbol {
	s.symbolsMu.RLock()
	defer s.symbolsMu.RUnlock()
	return s.symbols[uri]
}

func ptr[T any](v T) *T {
	return &v
}
