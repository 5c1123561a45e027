// Package devserver serves a compiled ferin program over HTTP and, when
// watching, recompiles on save and tells connected browsers to reload.
//
// The last successful build keeps being served as /app.js while the source
// is broken; the page itself switches to an error report until the next
// successful rebuild.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/leapstack-labs/ferin/internal/devserver/notifier"
	"github.com/leapstack-labs/ferin/pkg/compiler"
	"github.com/leapstack-labs/ferin/pkg/target"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the dev server.
type Config struct {
	Entry    string
	Target   target.Target
	Port     int
	Watch    bool
	Debounce time.Duration
	Title    string
	Logger   *slog.Logger
}

// Server is the development server.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	notifier *notifier.Notifier

	mu         sync.RWMutex
	good       *compiler.Result
	lastErr    error
	generation uint64
	builtAt    time.Time
}

// New creates a new dev server instance. Nothing is compiled until Rebuild
// or Serve is called.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	return &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		notifier: notifier.New(),
	}
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Rebuild reads and compiles the entry file. On success the new result
// replaces the served one; on failure the previous result is kept and the
// error is reported on the page. Connected browsers are told to reload in
// both cases.
func (s *Server) Rebuild() error {
	start := time.Now()
	res, err := s.compile()

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.lastErr = err
	if err == nil {
		s.good = res
		s.builtAt = time.Now()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("compilation failed", "file", s.cfg.Entry, "error", err)
	} else {
		s.logger.Info("compiled",
			"file", s.cfg.Entry,
			"generation", gen,
			"js_bytes", len(res.JS),
			"duration", time.Since(start))
	}
	s.notifier.Broadcast(notifier.Event{Generation: gen, Failed: err != nil})
	return err
}

func (s *Server) compile() (*compiler.Result, error) {
	src, err := os.ReadFile(s.cfg.Entry)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.cfg.Entry, err)
	}
	return compiler.Compile(string(src), s.cfg.Target, compiler.WithLogger(s.logger))
}

// snapshot returns the last good result, the build generation and the
// latest build error.
func (s *Server) snapshot() (*compiler.Result, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.good, s.generation, s.lastErr
}

// Serve starts the server on the configured port and blocks until the
// context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.cfg.Port, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	// a broken initial build still serves the error page
	_ = s.Rebuild()

	s.logger.Info("starting dev server", "addr", "http://"+displayAddr(ln.Addr()), "watch", s.cfg.Watch)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dev server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func displayAddr(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok && (tcp.IP == nil || tcp.IP.IsUnspecified()) {
		return fmt.Sprintf("localhost:%d", tcp.Port)
	}
	return addr.String()
}
