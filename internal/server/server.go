// Package server exposes the board over HTTP.
//
// Routes:
//
//	GET  /                  HTML board (?q=&kategorie=)
//	GET  /api/records       filtered records as JSON (?q=&kategorie=)
//	GET  /api/categories    category options as JSON
//	POST /api/reload        reload the price list now
//	GET  /health            load status
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/price-board/internal/board"
	"github.com/ginjaninja78/price-board/internal/render"
)

// ReloadPath is the manual reload endpoint.
const ReloadPath = "/api/reload"

// Board is what the server reads and reloads. *board.Board implements it.
type Board interface {
	Load(ctx context.Context) error
	View(search, category string) board.View
	Status() board.Status
}

// Server holds the HTTP handlers.
type Server struct {
	board  Board
	logger zerolog.Logger
	title  string
}

// New creates a Server for b.
func New(b Board, logger zerolog.Logger) *Server {
	return &Server{board: b, logger: logger, title: render.DefaultTitle}
}

// WithTitle sets the page heading.
func (s *Server) WithTitle(title string) *Server {
	if title != "" {
		s.title = title
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc(ReloadPath, s.handleReload)
	mux.HandleFunc("/", s.handlePage)

	return s.logRequests(mux)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	view := s.board.View(q.Get("q"), q.Get("kategorie"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.HTML(w, render.Page{Title: s.title, View: view, ReloadPath: ReloadPath}); err != nil {
		s.logger.Error().Err(err).Msg("template error")
	}
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	view := s.board.View(q.Get("q"), q.Get("kategorie"))

	status := http.StatusOK
	if view.HasDiagnostic() {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, view)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.board.View("", "").Categories)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	if err := s.board.Load(r.Context()); err != nil {
		s.writeJSON(w, http.StatusBadGateway, s.board.Status())
		return
	}
	s.writeJSON(w, http.StatusOK, s.board.Status())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.board.Status()
	code := http.StatusOK
	if !status.Ready {
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("json encode error")
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("price board listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
