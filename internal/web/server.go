// Package web serves a play as a small HTML reader with a JSON endpoint.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FocuswithJustin/JuniperStage/core/encoding"
	"github.com/FocuswithJustin/JuniperStage/internal/loader"
	"github.com/FocuswithJustin/JuniperStage/internal/logging"
	"github.com/FocuswithJustin/JuniperStage/internal/server"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Config holds server configuration.
type Config struct {
	Port     int
	Document string
}

// Server renders one document held by a loader.
type Server struct {
	loader    *loader.Loader
	document  string
	templates *template.Template
	log       *slog.Logger
}

var templateFuncs = template.FuncMap{
	"anchor":     encoding.Anchor,
	"pathEscape": url.PathEscape,
}

// New parses the embedded templates and returns a Server for document.
func New(l *loader.Loader, document string) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Server{loader: l, document: document, templates: tmpl, log: logging.WithComponent("web")}, nil
}

// Handler returns the routes wrapped in the middleware chain:
// request ID and access log, timing, method check, security headers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	html := func(h http.HandlerFunc) http.Handler {
		return server.SecurityHeadersWithCSP(server.ReaderCSPConfig(), h)
	}
	mux.Handle("/{$}", html(s.handlePlay))
	mux.Handle("/characters", html(s.handleCharacters))
	mux.Handle("/acts/{act}", html(s.handleAct))
	mux.Handle("/acts/{act}/scenes/{scene}", html(s.handleScene))
	api := func(h http.HandlerFunc) http.Handler {
		return server.SecurityHeadersWithCSP(server.APICSPConfig(), h)
	}
	mux.Handle("/api/play", api(s.handleAPIPlay))
	mux.Handle("/api/cache", api(s.handleAPICache))

	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("/static/", html(http.StripPrefix("/static/", http.FileServer(http.FS(static))).ServeHTTP))

	return logging.CombinedMiddleware(server.TimingMiddleware(
		server.MethodsMiddleware(mux, http.MethodGet, http.MethodHead)))
}

// Reload drops the cached document and parses it again. On failure the
// document stays uncached and requests answer 500 until it is fixed.
func (s *Server) Reload(ctx context.Context) error {
	s.loader.Forget(s.document)
	doc, err := s.loader.Load(ctx, s.document)
	if err != nil {
		s.log.ErrorContext(ctx, "document reload failed", "path", s.document, "error", err)
		return err
	}
	s.log.InfoContext(ctx, "document reloaded", "path", doc.Path, "blake3", doc.BLAKE3)
	return nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
// SIGHUP reloads the document.
func Start(ctx context.Context, cfg Config, l *loader.Loader) error {
	s, err := New(l, cfg.Document)
	if err != nil {
		return err
	}

	// Parse once up front so a broken document fails at startup.
	doc, err := l.Load(ctx, cfg.Document)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.ServerStartup("reader", "http", cfg.Port,
		"document", doc.Path, "title", doc.Play.Title())

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-hup:
			_ = s.Reload(ctx)
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.log.Info("reader shutting down")
			return srv.Shutdown(shutdownCtx)
		}
	}
}
