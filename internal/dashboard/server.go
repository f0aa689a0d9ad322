// Package dashboard serves the person network over HTTP: the interactive
// page at / and the filtered network, people, and stats as JSON under /api.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/layout"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/network"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/person"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/viz"
)

// Config holds dashboard server configuration.
type Config struct {
	ListenAddr string // e.g. ":8741"
	Title      string // Page title
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":8741",
		Title:      viz.DefaultOptions().Title,
	}
}

// Server is the dashboard HTTP server. The table and network are loaded
// once at startup; requests only filter and render them.
type Server struct {
	config    *Config
	table     *person.Table
	result    *network.Result
	positions map[string]layout.Point3
	page      string
	server    *http.Server
}

// NewServer creates a new dashboard server for an assembled network.
func NewServer(config *Config, table *person.Table, result *network.Result) (*Server, error) {
	s := &Server{
		config: config,
		table:  table,
		result: result,
	}

	// Layout runs once over the full graph. The page and the API both
	// reuse these positions, so coordinates stay put while filtering.
	full := result.Select(network.Selection{})
	s.positions = layout.Spring3D(full.Graph, layout.DefaultSeed)

	opts := viz.DefaultOptions()
	opts.Title = config.Title
	page, err := viz.GenerateHTML(viz.BuildGraphData(full, s.positions), opts)
	if err != nil {
		return nil, fmt.Errorf("rendering dashboard page: %w", err)
	}
	s.page = page

	s.server = &http.Server{
		Addr:         config.ListenAddr,
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) router() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/", s.handleIndex)
	router.Get("/api/network", s.handleNetwork)
	router.Get("/api/people", s.handlePeople)
	router.Get("/api/stats", s.handleStats)
	router.Get("/api/health", s.handleHealth)

	return router
}

// Handler exposes the configured router. Useful for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving the dashboard.
func (s *Server) Start() error {
	slog.Info("Starting dashboard server", "addr", s.config.ListenAddr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard server error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("Stopping dashboard server")
	return s.server.Shutdown(ctx)
}

// handleIndex serves the pre-rendered dashboard page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.page)
}

// NetworkResponse is the payload of GET /api/network.
type NetworkResponse struct {
	Nodes []viz.Node   `json:"nodes"`
	Edges []viz.Edge   `json:"edges"`
	Stats NetworkStats `json:"stats"`
}

// NetworkStats summarizes the size of a filtered network.
type NetworkStats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// handleNetwork handles GET /api/network?person=X&gender=F&gender=M&search=q.
// The gender parameter repeats for multi-value filters. Metrics in the
// response come from the full graph; filters only restrict the node set.
func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := network.Selection{
		Person:  q.Get("person"),
		Genders: q["gender"],
		Search:  q.Get("search"),
	}

	view := s.result.Select(sel)
	data := viz.BuildGraphData(view, s.positions)

	respondJSON(w, NetworkResponse{
		Nodes: data.Nodes,
		Edges: data.Edges,
		Stats: NetworkStats{
			Nodes: len(data.Nodes),
			Edges: len(data.Edges),
		},
	})
}

// handlePeople handles GET /api/people.
func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.table.People())
}

// StatsResponse is the payload of GET /api/stats.
type StatsResponse struct {
	People      int                 `json:"people"`
	Edges       int                 `json:"edges"`
	Genders     []person.CountEntry `json:"genders"`
	Occupations []person.CountEntry `json:"occupations"`
}

// handleStats handles GET /api/stats with distributions over the full table.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	people := s.table.People()
	respondJSON(w, StatsResponse{
		People:      s.table.Len(),
		Edges:       s.result.Graph.EdgeCount(),
		Genders:     person.CountByGender(people),
		Occupations: person.CountByOccupation(people),
	})
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// requestLogger logs HTTP requests with status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
