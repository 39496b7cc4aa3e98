// Package server exposes the list renderer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shodgson/mdlist/dom"
	"github.com/shodgson/mdlist/internal/config"
	"github.com/shodgson/mdlist/list"
	"github.com/shodgson/mdlist/markdown"
)

// Server is the HTTP API server for mdlist.
type Server struct {
	router chi.Router
	dom    *dom.Serializer
	parser *markdown.Parser
	log    *slog.Logger
	cfg    config.ServerConfig
}

// NewServer creates and configures the HTTP server. A nil log discards
// output.
func NewServer(cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		dom: dom.NewSerializer(
			dom.WithKeyAttr(cfg.Render.KeyAttr),
			dom.WithRoleAttr(cfg.Render.RoleAttr),
			dom.WithIndentUnit(list.Pixels(cfg.Render.IndentUnit)),
			dom.WithLogger(log),
		),
		parser: markdown.NewParser(),
		log:    log,
		cfg:    cfg.Server,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.Token != "" {
			r.Use(AuthMiddleware(s.cfg.Token, s.log))
		}

		r.Post("/api/render", s.handleRender)
		r.Post("/api/parse", s.handleParse)
		r.Post("/api/restore", s.handleRestore)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting mdlist server", "addr", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
