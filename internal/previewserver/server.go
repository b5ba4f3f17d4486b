// Package previewserver serves the paginated document over loopback HTTP so
// the embedded browser surface can load it by URL instead of temp files.
package previewserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	mdpaginate "github.com/alnah/go-mdpaginate"
)

// Server holds the latest render and serves it to the preview surface.
// Update replaces the whole document atomically; there is no per-fragment
// mutation.
type Server struct {
	log    *slog.Logger
	router chi.Router

	mu        sync.RWMutex
	html      string
	fragments []mdpaginate.PageFragment

	listener net.Listener
	httpSrv  *http.Server
}

// New creates a preview server with an empty document.
func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{log: log}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDocument)
	r.Get("/fragments/{n}", s.handleFragment)
	r.Get("/healthz", s.handleHealth)

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Update replaces the served document and fragment sequence.
func (s *Server) Update(result *mdpaginate.Result) {
	if result == nil {
		return
	}
	s.mu.Lock()
	s.html = result.HTML
	s.fragments = result.Fragments
	s.mu.Unlock()
}

// Start listens on a loopback port (an ephemeral one when addr is empty) and
// serves until Shutdown.
func (s *Server) Start(addr string) error {
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("previewserver: listen: %w", err)
	}
	s.listener = ln

	s.httpSrv = &http.Server{
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("preview server error", "error", err)
		}
	}()

	s.log.Info("preview server started", "url", s.URL())
	return nil
}

// URL returns the base URL once Start has succeeded.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	doc := s.html
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if doc == "" {
		doc = emptyDocument
	}
	_, _ = w.Write([]byte(doc))
}

// handleFragment serves one page fragment as a standalone document, for
// debugging and for export collaborators that want a single page.
func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		http.Error(w, "fragment index must be an integer", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	fragments := s.fragments
	s.mu.RUnlock()

	if n < 1 || n > len(fragments) {
		http.Error(w, fmt.Sprintf("fragment %d out of range [1,%d]", n, len(fragments)), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(fragments[n-1].HTML))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

const emptyDocument = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Paginated Document</title></head>
<body><p>No document rendered yet.</p></body>
</html>`
