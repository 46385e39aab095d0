// Package web serves the Salient marketing pages, the pilot form and the
// voice demo API.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/satindergrewal/salient/internal/demo"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"home", "why", "agent", "compliance", "customers", "company", "pilot", "notfound"}

// Options configures the web handler.
type Options struct {
	Demos  *demo.Manager
	Logger *zap.Logger

	// Pilot form submissions allowed per client per minute, and the burst.
	FormPerMinute float64
	FormBurst     int

	// Demo sessions a client may create per minute, and the burst.
	DemoPerMinute float64
	DemoBurst     int
}

// Server is the site's HTTP handler.
type Server struct {
	log     *zap.Logger
	demos   *demo.Manager
	pages   map[string]*template.Template
	formLim *ipLimiter
	demoLim *ipLimiter
	handler http.Handler
}

// page is the data every template receives.
type page struct {
	Title       string
	Description string
	Path        string
	Agents      []Agent
	Data        any
}

// NewServer parses the embedded templates and builds the route table.
func NewServer(opts Options) (*Server, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	s := &Server{
		log:     log,
		demos:   opts.Demos,
		pages:   pages,
		formLim: newIPLimiter(opts.FormPerMinute, opts.FormBurst),
		demoLim: newIPLimiter(opts.DemoPerMinute, opts.DemoBurst),
	}
	s.handler = s.logRequests(s.routes())
	return s, nil
}

func parsePages() (map[string]*template.Template, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

var funcs = template.FuncMap{
	// delay staggers fade-in animations.
	"delay": func(i int) string { return fmt.Sprintf("%.1fs", float64(i)*0.1) },
	"dict": func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			k, ok := kv[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
			}
			m[k] = kv[i+1]
		}
		return m, nil
	},
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /why-salient", s.handleWhy)
	mux.HandleFunc("GET /agents/{agent}", s.handleAgent)
	mux.HandleFunc("GET /compliance", s.handleCompliance)
	mux.HandleFunc("GET /customers", s.handleCustomers)
	mux.HandleFunc("GET /company", s.handleCompany)
	mux.HandleFunc("GET /pilot", s.handlePilot)
	mux.HandleFunc("POST /pilot", s.handlePilotSubmit)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/demos", s.handleCreateDemo)
	mux.HandleFunc("GET /api/demos/{id}", s.handleDemoState)
	mux.HandleFunc("DELETE /api/demos/{id}", s.handleDeleteDemo)
	mux.HandleFunc("POST /api/demos/{id}/play", s.handleDemoPlay)
	mux.HandleFunc("POST /api/demos/{id}/pause", s.handleDemoPause)
	mux.HandleFunc("POST /api/demos/{id}/mute", s.handleDemoMute)
	mux.HandleFunc("GET /api/demos/{id}/events", s.handleDemoEvents)
	mux.HandleFunc("POST /api/demos/{id}/offer", s.handleDemoOffer)
	mux.HandleFunc("GET /api/demos/{id}/stream", s.handleDemoStream)

	mux.HandleFunc("/", s.handleNotFound)
	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run prunes idle rate-limit entries until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := s.formLim.prune(now) + s.demoLim.prune(now); n > 0 {
				s.log.Debug("pruned rate limits", zap.Int("clients", n))
			}
		}
	}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, p page) {
	t, ok := s.pages[name]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	if p.Agents == nil {
		p.Agents = Agents()
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		s.log.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if s.demos != nil {
		resp["sessions"] = s.demos.Count()
	}
	writeJSON(w, http.StatusOK, resp)
}
