package preview

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const placeholderPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Pagepad — no preview</title>
<style>
body { font-family: sans-serif; background: #1e1e2e; color: #cdd6f4;
       display: flex; align-items: center; justify-content: center;
       height: 100vh; margin: 0; }
.card { text-align: center; }
h1 { font-weight: 500; }
p { color: #a6adc8; }
</style>
</head>
<body>
<div class="card">
<h1>No preview available</h1>
<p>Create an HTML file (for example index.html) to see a live preview.</p>
</div>
</body>
</html>`

// Surface is where renders get displayed. The renderer publishes handles
// to it and flips it into the placeholder state when assembly fails.
type Surface interface {
	Publish(token string)
	ShowPlaceholder()
	URL(token string) string
}

// Server is the loopback HTTP surface for the browser preview. It serves
// the current live document at / and any live handle at /p/{token}.
type Server struct {
	registry *Registry

	mu          sync.Mutex
	current     string
	placeholder bool

	verbose    bool
	httpServer *http.Server
	baseURL    string
}

// NewServer returns a server over the given handle registry. It starts in
// the placeholder state.
func NewServer(registry *Registry) *Server {
	return &Server{registry: registry, placeholder: true}
}

// SetVerbose enables request logging. Keep it off under the TUI, where
// stdout belongs to the alt screen.
func (s *Server) SetVerbose(v bool) {
	s.verbose = v
}

// Handler returns the routing tree, split out so tests can drive it with
// httptest without binding a port.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.verbose {
		r.Use(middleware.Logger)
	}
	r.Get("/", s.handleRoot)
	r.Get("/p/{token}", s.handleDocument)
	return r
}

// Start binds the loopback listener and serves in the background. The
// returned base URL is stable for the server's lifetime.
func (s *Server) Start(port int) (string, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to bind preview server on %s: %w", addr, err)
	}

	s.baseURL = "http://" + listener.Addr().String()
	s.httpServer = &http.Server{Handler: s.Handler()}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("preview server: %v", err)
		}
	}()

	return s.baseURL, nil
}

// Shutdown stops the server, waiting briefly for in-flight requests.
func (s *Server) Shutdown() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Publish makes token the live document at /.
func (s *Server) Publish(token string) {
	s.mu.Lock()
	s.current = token
	s.placeholder = false
	s.mu.Unlock()
}

// ShowPlaceholder flips / to the placeholder page. Already published
// handles stay servable under their own tokens until released.
func (s *Server) ShowPlaceholder() {
	s.mu.Lock()
	s.placeholder = true
	s.mu.Unlock()
}

// URL returns the address of a handle on this surface.
func (s *Server) URL(token string) string {
	return s.baseURL + "/p/" + token
}

// BaseURL returns the server root, or "" before Start.
func (s *Server) BaseURL() string {
	return s.baseURL
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	token := s.current
	placeholder := s.placeholder
	s.mu.Unlock()

	if placeholder || token == "" {
		writeDocument(w, placeholderPage)
		return
	}

	doc, ok := s.registry.Get(token)
	if !ok {
		writeDocument(w, placeholderPage)
		return
	}
	writeDocument(w, doc)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	doc, ok := s.registry.Get(token)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeDocument(w, doc)
}

func writeDocument(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(doc))
}
