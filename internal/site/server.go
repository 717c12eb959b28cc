// Package site serves the static front end: "/" is index.html, "/auth" is
// auth.html and every other path is looked up by name under the root.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config holds server configuration.
type Config struct {
	Port int
	// RootDir is served from disk when set; otherwise the embedded assets are.
	RootDir  string
	Hidden   []string // glob patterns answered with 404
	AllowAll bool     // allow all CORS origins
}

// Server is the static asset host.
type Server struct {
	cfg        Config
	files      fs.FS
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over cfg.RootDir, or over assets when no root
// directory is configured.
func New(cfg Config, assets fs.FS) (*Server, error) {
	files := assets
	if cfg.RootDir != "" {
		info, err := os.Stat(cfg.RootDir)
		if err != nil {
			return nil, fmt.Errorf("root dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root dir %s is not a directory", cfg.RootDir)
		}
		files = os.DirFS(cfg.RootDir)
	}
	if files == nil {
		return nil, errors.New("no assets to serve")
	}

	s := &Server{cfg: cfg, files: files}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.page("index.html"))
	r.Get("/auth", s.page("auth.html"))

	static := http.FileServerFS(s.files)
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		if Hidden(r.URL.Path, s.cfg.Hidden) {
			http.NotFound(w, r)
			return
		}
		static.ServeHTTP(w, r)
	})

	return r
}

// page serves one fixed file.
func (s *Server) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := fs.Stat(s.files, name); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, s.files, name)
	}
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// URL is the address the server is reachable at locally.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.cfg.Port)
}

// Start begins listening on the configured port. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	log.Printf("AI Interview Assistant frontend server listening at %s", s.URL())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// OpenBrowser opens url in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
