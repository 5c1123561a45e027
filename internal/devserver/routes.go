package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/ferin/internal/page"
	"github.com/starfederation/datastar-go/datastar"
)

// Route paths.
const (
	PathScript    = "/app.js"
	PathStyle     = "/app.css"
	PathReload    = "/reload"
	PathHotReload = "/hotreload"
	PathHealth    = "/healthz"
)

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/", s.handlePage)
	r.Get(PathScript, s.handleScript)
	r.Get(PathStyle, s.handleStyle)
	r.Get(PathReload, s.handleReload)
	r.Post(PathHotReload, s.handleHotReload)
	r.Get(PathHotReload, s.handleHotReload)
	r.Get(PathHealth, s.handleHealth)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *Server) reloadURL() string {
	if !s.cfg.Watch {
		return ""
	}
	return PathReload
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	good, _, err := s.snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if err != nil || good == nil {
		if err == nil {
			err = errNotBuilt
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = page.ErrorPage(err, s.reloadURL()).Render(r.Context(), w)
		return
	}

	opts := page.Options{Title: s.cfg.Title, ScriptSrc: PathScript, ReloadURL: s.reloadURL()}
	if good.HasCSS() {
		opts.Stylesheet = PathStyle
	}
	if err := page.Host(opts).Render(r.Context(), w); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

func (s *Server) handleScript(w http.ResponseWriter, _ *http.Request) {
	good, _, _ := s.snapshot()
	if good == nil {
		http.Error(w, errNotBuilt.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(good.JS))
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	good, _, _ := s.snapshot()
	if good == nil || !good.HasCSS() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(good.CSS))
}

// handleReload holds an SSE stream open until the next rebuild, then tells
// the browser to reload.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ch := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(ch)

	sse := datastar.NewSSE(w, r)
	select {
	case ev := <-ch:
		s.logger.Debug("reloading browser", "generation", ev.Generation, "failed", ev.Failed)
		_ = sse.ExecuteScript("window.location.reload()")
	case <-r.Context().Done():
	}
}

func (s *Server) handleHotReload(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	msg := "OK"
	if err := s.Rebuild(); err != nil {
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// Health is the /healthz payload.
type Health struct {
	OK         bool      `json:"ok"`
	Generation uint64    `json:"generation"`
	Error      string    `json:"error,omitempty"`
	BuiltAt    time.Time `json:"built_at,omitzero"`
	Components []string  `json:"components,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	good, gen, err := s.snapshot()
	h := Health{OK: err == nil && good != nil, Generation: gen}
	if err != nil {
		h.Error = err.Error()
	}
	if good != nil {
		s.mu.RLock()
		h.BuiltAt = s.builtAt
		s.mu.RUnlock()
		h.Components = good.Components
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h)
}
